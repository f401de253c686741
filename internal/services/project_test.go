package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/tracking"
)

// ServiceTestSuite provides a base suite with a fresh in-memory database and
// a frozen clock
type ServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ctx         context.Context
	projectRepo *repos.ProjectRepository
	taskRepo    *repos.TaskRepository
	userRepo    *repos.UserRepository
	projectSvc  *Project
	taskSvc     *Task
	dashboard   *Dashboard
	now         time.Time
}

func (s *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	err = db.AutoMigrate(&models.Project{}, &models.Task{}, &models.User{}, &models.Leave{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	s.db = db
	s.ctx = context.Background()
	s.projectRepo = repos.NewProjectRepository(db)
	s.taskRepo = repos.NewTaskRepository(db)
	s.userRepo = repos.NewUserRepository(db)

	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	clock := func() time.Time { return s.now }

	s.projectSvc = NewProjectService(s.projectRepo, s.taskRepo, s.userRepo)
	s.projectSvc.now = clock
	s.taskSvc = NewTaskService(s.taskRepo, s.projectRepo)
	s.taskSvc.now = clock
	s.dashboard = NewDashboardService(s.projectRepo, s.taskRepo, s.userRepo)
	s.dashboard.now = clock
}

func (s *ServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

func (s *ServiceTestSuite) admin() Actor {
	return Actor{ID: 1, Role: models.RoleDirector}
}

func (s *ServiceTestSuite) staff(id uint) Actor {
	return Actor{ID: id, Role: models.RoleStaff}
}

func (s *ServiceTestSuite) createProject(mutate func(*models.Project)) *models.Project {
	project := &models.Project{
		Name:           fmt.Sprintf("project-%s", uuid.NewString()[:8]),
		Status:         models.ProjectStatusStarted,
		AllocatedHours: 40,
	}
	if mutate != nil {
		mutate(project)
	}
	s.Require().NoError(s.projectSvc.Create(s.ctx, project))
	return project
}

func (s *ServiceTestSuite) createTask(projectID uint, mutate func(*models.Task)) *models.Task {
	task := &models.Task{ProjectID: projectID, Title: "work"}
	if mutate != nil {
		mutate(task)
	}
	s.Require().NoError(s.taskSvc.Create(s.ctx, task, s.admin()))
	return task
}

type ProjectServiceTestSuite struct {
	ServiceTestSuite
}

func (s *ProjectServiceTestSuite) TestCreateGeneratesCode() {
	project := s.createProject(nil)
	s.Require().NotEmpty(project.Code)
}

func (s *ProjectServiceTestSuite) TestStartTimer() {
	project := s.createProject(func(p *models.Project) {
		p.Status = models.ProjectStatusNotStarted
	})

	started, err := s.projectSvc.StartTimer(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().NotNil(started.TimerStartTime)
	s.Require().Equal(s.now.Format("2006-01-02 15:04:05"), *started.TimerStartTime)

	// First start moves the project off not-started
	s.Require().Equal(models.ProjectStatusStarted, started.Status)

	// A second start is refused
	_, err = s.projectSvc.StartTimer(s.ctx, project.ID)
	s.Require().ErrorIs(err, ErrTimerAlreadyRunning)
}

func (s *ProjectServiceTestSuite) TestHoldTimerFoldsElapsedIntoBaseline() {
	project := s.createProject(func(p *models.Project) {
		p.UsedHours = 10
	})
	_, err := s.projectSvc.StartTimer(s.ctx, project.ID)
	s.Require().NoError(err)

	// Two hours pass on the frozen clock
	s.now = s.now.Add(2 * time.Hour)

	held, err := s.projectSvc.HoldTimer(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Nil(held.TimerStartTime)
	s.Require().InDelta(12.0, held.UsedHours, 1e-6)

	// Holding again is refused
	_, err = s.projectSvc.HoldTimer(s.ctx, project.ID)
	s.Require().ErrorIs(err, ErrTimerNotRunning)
}

func (s *ProjectServiceTestSuite) TestHoldTimerClampsNegativeBaseline() {
	project := s.createProject(func(p *models.Project) {
		p.UsedHours = -5
	})
	_, err := s.projectSvc.StartTimer(s.ctx, project.ID)
	s.Require().NoError(err)
	s.now = s.now.Add(time.Hour)

	held, err := s.projectSvc.HoldTimer(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().InDelta(1.0, held.UsedHours, 1e-6)
}

func (s *ProjectServiceTestSuite) TestStatusChangeAppliesAndStamps() {
	project := s.createProject(nil)

	effect, err := s.projectSvc.RequestStatusChange(s.ctx, project.ID, models.ProjectStatusCompleted, s.admin())
	s.Require().NoError(err)
	s.Require().Equal(tracking.EffectApply, effect.Kind)

	updated, err := s.projectSvc.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.ProjectStatusCompleted, updated.Status)
	s.Require().NotNil(updated.CompletedAt)
}

func (s *ProjectServiceTestSuite) TestStatusChangeAuthz() {
	project := s.createProject(nil)

	// Completing is admin-only, even for the project lead
	_, err := s.projectSvc.RequestStatusChange(s.ctx, project.ID, models.ProjectStatusCompleted, s.staff(9))
	s.Require().ErrorIs(err, ErrNotAuthorized)

	// Other transitions pass for the lead
	lead := uint(9)
	_, err = s.projectRepo.UpdateFields(s.ctx, project.ID, map[string]interface{}{"lead_id": lead})
	s.Require().NoError(err)

	effect, err := s.projectSvc.RequestStatusChange(s.ctx, project.ID, models.ProjectStatusUserTesting, s.staff(9))
	s.Require().NoError(err)
	s.Require().Equal(tracking.EffectApply, effect.Kind)
}

func (s *ProjectServiceTestSuite) TestStatusChangeRejectLeavesStateUntouched() {
	project := s.createProject(nil)

	effect, err := s.projectSvc.RequestStatusChange(s.ctx, project.ID, models.ProjectStatusBlocked, s.admin())
	s.Require().NoError(err)
	s.Require().Equal(tracking.EffectReject, effect.Kind)
	s.Require().Equal(tracking.MsgBlockedRequiresRisk, effect.Reason)

	unchanged, err := s.projectSvc.Get(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.ProjectStatusStarted, unchanged.Status)
}

func (s *ProjectServiceTestSuite) TestStatusChangeBlockedWithActiveRisk() {
	project := s.createProject(nil)
	s.createTask(project.ID, func(t *models.Task) {
		t.Type = models.TaskTypeRisk
		t.Status = models.TaskStatusInProgress
	})

	effect, err := s.projectSvc.RequestStatusChange(s.ctx, project.ID, models.ProjectStatusBlocked, s.admin())
	s.Require().NoError(err)
	s.Require().Equal(tracking.EffectApply, effect.Kind)
}

func (s *ProjectServiceTestSuite) TestCompleteCascade() {
	parent := s.createProject(nil)
	childA := s.createProject(func(p *models.Project) {
		p.ParentID = &parent.ID
		p.Weight = 50
	})
	childB := s.createProject(func(p *models.Project) {
		p.ParentID = &parent.ID
		p.Weight = 50
		p.Status = models.ProjectStatusCompleted
	})
	_ = childB

	// Completing the last open child reroutes to the parent flow
	effect, err := s.projectSvc.RequestStatusChange(s.ctx, childA.ID, models.ProjectStatusCompleted, s.admin())
	s.Require().NoError(err)
	s.Require().Equal(tracking.EffectReroute, effect.Kind)
	s.Require().Equal(tracking.ModalCompleteParent, effect.Modal)
	s.Require().Equal(parent.ID, effect.TargetID)
	s.Require().Equal(childA.ID, effect.TriggerID)

	// The confirmation completes child and parent together
	completed, err := s.projectSvc.CompleteCascade(s.ctx, parent.ID, childA.ID, s.admin())
	s.Require().NoError(err)
	s.Require().Equal(models.ProjectStatusCompleted, completed.Status)
	s.Require().NotNil(completed.CompletedAt)

	child, err := s.projectSvc.Get(s.ctx, childA.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.ProjectStatusCompleted, child.Status)
}

func (s *ProjectServiceTestSuite) TestCompleteNotSatisfiedRequiresReason() {
	project := s.createProject(nil)

	_, err := s.projectSvc.CompleteNotSatisfied(s.ctx, project.ID, "  ", s.admin())
	s.Require().ErrorIs(err, ErrReasonRequired)

	updated, err := s.projectSvc.CompleteNotSatisfied(s.ctx, project.ID, "missed acceptance criteria", s.admin())
	s.Require().NoError(err)
	s.Require().Equal(models.ProjectStatusCompletedNotSatisfied, updated.Status)
	s.Require().Equal("missed acceptance criteria", updated.CompletionNote)
}

func (s *ProjectServiceTestSuite) TestViewRollsUpHierarchy() {
	parent := s.createProject(func(p *models.Project) {
		p.AllocatedHours = 999
		p.UsedHours = 999
	})
	s.createProject(func(p *models.Project) {
		p.ParentID = &parent.ID
		p.Weight = 60
		p.AllocatedHours = 60
		p.UsedHours = 30
		p.Status = models.ProjectStatusCompleted
	})
	s.createProject(func(p *models.Project) {
		p.ParentID = &parent.ID
		p.Weight = 40
		p.AllocatedHours = 40
		p.UsedHours = 10
	})

	view, err := s.projectSvc.View(s.ctx, parent.ID)
	s.Require().NoError(err)
	s.Require().Equal(60, view.Progress)
	s.Require().Equal(100.0, view.DisplayedAlloc)
	s.Require().Equal(40.0, view.DisplayedUsed)
	s.Require().Equal("N/A", view.LeadName)
}

func (s *ProjectServiceTestSuite) TestViewLeadNameFallback() {
	lead := &models.User{Username: "asha", Role: models.RoleTeamLeader}
	s.Require().NoError(s.userRepo.CreateUser(s.ctx, lead))

	project := s.createProject(func(p *models.Project) {
		p.LeadID = &lead.ID
	})

	view, err := s.projectSvc.View(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal("asha", view.LeadName)

	// A dangling lead reference degrades to the placeholder
	missing := uint(4242)
	_, err = s.projectRepo.UpdateFields(s.ctx, project.ID, map[string]interface{}{"lead_id": missing})
	s.Require().NoError(err)

	view, err = s.projectSvc.View(s.ctx, project.ID)
	s.Require().NoError(err)
	s.Require().Equal("N/A", view.LeadName)
}

func TestProjectServiceSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
