package services

import (
	"context"
	"time"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/tracking"
)

// Task handles task-related operations
type Task struct {
	repo        *repos.TaskRepository
	projectRepo *repos.ProjectRepository
	now         func() time.Time
}

// NewTaskService creates a new instance of the task service
func NewTaskService(repo *repos.TaskRepository, projectRepo *repos.ProjectRepository) *Task {
	return &Task{
		repo:        repo,
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// Create creates a new task. Risk and issue items are gated to the leader
// tier.
func (s *Task) Create(ctx context.Context, task *models.Task, actor Actor) error {
	if task.Type == models.TaskTypeRisk || task.Type == models.TaskTypeIssue {
		if !tracking.CanManage(actor.Role, tracking.ActionManageRiskItems, nil, actor.ID) {
			return ErrNotAuthorized
		}
	}
	// The project must exist; tasks never float free.
	if _, err := s.projectRepo.Get(ctx, task.ProjectID); err != nil {
		return err
	}
	return s.repo.Create(ctx, task)
}

// Get retrieves a task by ID
func (s *Task) Get(ctx context.Context, id uint) (*models.Task, error) {
	return s.repo.Get(ctx, id)
}

// ListByProject retrieves the tasks of a project with pagination
func (s *Task) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	return s.repo.ListByProject(ctx, projectID, opts)
}

// Update applies a partial field set to a task
func (s *Task) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Task, error) {
	return s.repo.UpdateFields(ctx, id, fields)
}

// Delete deletes a task
func (s *Task) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// RequestStatusChange routes a requested task status change through the
// guard, persisting apply effects.
func (s *Task) RequestStatusChange(ctx context.Context, id uint, newStatus models.TaskStatus) (tracking.Effect, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return tracking.Effect{}, err
	}

	effect := tracking.RequestTaskTransition(task, newStatus)
	if effect.Kind != tracking.EffectApply {
		return effect, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return tracking.Effect{}, err
	}
	return effect, nil
}

// Complete finishes the complete-task flow: the status write is committed
// together with the completion stamp and the captured time figures.
func (s *Task) Complete(ctx context.Context, id uint, timeSpent, timeSaved *float64) (*models.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == models.TaskStatusCompleted {
		return task, nil
	}

	fields := map[string]interface{}{
		models.TaskStatusField:      models.TaskStatusCompleted,
		models.TaskCompletedAtField: s.now(),
	}
	if timeSpent != nil {
		fields["time_spent"] = *timeSpent
	}
	if timeSaved != nil {
		fields["time_saved"] = *timeSaved
	}
	return s.repo.UpdateFields(ctx, id, fields)
}
