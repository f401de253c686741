package repos

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/crewline/crewline/internal/db/models"
)

type TaskRepositoryTestSuite struct {
	DBRepositoryTestSuite
}

func (s *TaskRepositoryTestSuite) TestCreateTask() {
	project := s.createTestProject()
	task := &models.Task{ProjectID: project.ID, Title: "write brief"}

	err := s.taskRepo.Create(s.ctx, task)
	s.Require().NoError(err)
	s.Require().NotZero(task.ID)

	created, err := s.taskRepo.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.TaskStatusNotStarted, created.Status)
	s.Require().Equal(models.TaskTypePlain, created.Type)
}

func (s *TaskRepositoryTestSuite) TestCreateTaskValidation() {
	s.Require().Error(s.taskRepo.Create(s.ctx, &models.Task{Title: "orphan"}))
	project := s.createTestProject()
	s.Require().Error(s.taskRepo.Create(s.ctx, &models.Task{ProjectID: project.ID}))
}

func (s *TaskRepositoryTestSuite) TestListByProject() {
	projectA := s.createTestProject()
	projectB := s.createTestProject()
	s.createTestTask(projectA.ID)
	s.createTestTask(projectA.ID)
	s.createTestTask(projectB.ID)

	tasks, err := s.taskRepo.ListByProject(s.ctx, projectA.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
}

func (s *TaskRepositoryTestSuite) TestListByProjects() {
	projectA := s.createTestProject()
	projectB := s.createTestProject()
	projectC := s.createTestProject()
	s.createTestTask(projectA.ID)
	s.createTestTask(projectB.ID)
	s.createTestTask(projectC.ID)

	tasks, err := s.taskRepo.ListByProjects(s.ctx, []uint{projectA.ID, projectB.ID})
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
}

func (s *TaskRepositoryTestSuite) TestUpdateStatus() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID)

	err := s.taskRepo.UpdateStatus(s.ctx, task.ID, models.TaskStatusInProgress)
	s.Require().NoError(err)

	updated, err := s.taskRepo.Get(s.ctx, task.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.TaskStatusInProgress, updated.Status)
}

func (s *TaskRepositoryTestSuite) TestUpdateFields() {
	project := s.createTestProject()
	task := s.createTestTask(project.ID)
	spent := 3.5

	updated, err := s.taskRepo.UpdateFields(s.ctx, task.ID, map[string]interface{}{
		models.TaskStatusField: models.TaskStatusCompleted,
		"time_spent":           spent,
	})
	s.Require().NoError(err)
	s.Require().Equal(models.TaskStatusCompleted, updated.Status)
	s.Require().NotNil(updated.TimeSpent)
	s.Require().Equal(spent, *updated.TimeSpent)
}

func TestTaskRepositorySuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
