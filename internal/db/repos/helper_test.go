package repos

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
)

// DBRepositoryTestSuite provides a base test suite for repository tests
type DBRepositoryTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ctx         context.Context
	projectRepo *ProjectRepository
	taskRepo    *TaskRepository
	userRepo    *UserRepository
	leaveRepo   *LeaveRepository
}

func (s *DBRepositoryTestSuite) SetupTest() {
	// Create new in-memory database
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_json=1"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	// Run migrations
	err = db.AutoMigrate(&models.Project{}, &models.Task{}, &models.User{}, &models.Leave{})
	require.NoError(s.T(), err, "Failed to run database migrations")

	// Initialize repositories
	s.db = db
	s.projectRepo = NewProjectRepository(s.db)
	s.taskRepo = NewTaskRepository(s.db)
	s.userRepo = NewUserRepository(s.db)
	s.leaveRepo = NewLeaveRepository(s.db)
	s.ctx = context.Background()
}

func (s *DBRepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DBRepositoryTestSuite) randomProject() *models.Project {
	project := &models.Project{
		Code:           uuid.NewString()[:8],
		Name:           fmt.Sprintf("project-%s", uuid.NewString()[:8]),
		Status:         models.ProjectStatusNotStarted,
		AllocatedHours: 40,
	}
	return project
}

func (s *DBRepositoryTestSuite) createTestProject() *models.Project {
	project := s.randomProject()
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	return project
}

func (s *DBRepositoryTestSuite) createTestChild(parentID uint, weight int) *models.Project {
	project := s.randomProject()
	project.ParentID = &parentID
	project.Weight = weight
	err := s.projectRepo.Create(s.ctx, project)
	s.Require().NoError(err)
	return project
}

func (s *DBRepositoryTestSuite) createTestTask(projectID uint) *models.Task {
	task := &models.Task{
		ProjectID: projectID,
		Title:     "test-task",
		Status:    models.TaskStatusNotStarted,
	}
	err := s.taskRepo.Create(s.ctx, task)
	s.Require().NoError(err)
	return task
}

func (s *DBRepositoryTestSuite) createTestUser() *models.User {
	user := &models.User{
		Username: fmt.Sprintf("user-%s", uuid.NewString()[:8]),
		Email:    "test@example.com",
		Role:     models.RoleStaff,
	}
	err := s.userRepo.CreateUser(s.ctx, user)
	s.Require().NoError(err)
	return user
}

func (s *DBRepositoryTestSuite) createTestLeave(staffID uint) *models.Leave {
	leave := &models.Leave{
		StaffID:   staffID,
		Type:      models.LeaveTypeAnnual,
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
	}
	err := s.leaveRepo.Create(s.ctx, leave)
	s.Require().NoError(err)
	return leave
}

// TestDBRepository runs the test suite for the DBRepository to verify no panic
func TestDBRepository(t *testing.T) {
	suite.Run(t, new(DBRepositoryTestSuite))
}
