package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/crewline/crewline/internal/db/models"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create creates a new task in the database
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Get retrieves a task by ID from the database
func (r *TaskRepository) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject retrieves all tasks for a specific project from the database
// with pagination
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Task, error) {
	var tasks []models.Task
	query := r.db.WithContext(ctx).Where(models.Task{ProjectID: projectID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("id").Find(&tasks).Error
	return tasks, err
}

// ListAll retrieves every task without pagination for the derived reporting
// views
func (r *TaskRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error
	return tasks, err
}

// ListByProjects retrieves the tasks of all the given projects
func (r *TaskRepository) ListByProjects(ctx context.Context, projectIDs []uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("project_id IN ?", projectIDs).Order("id").Find(&tasks).Error
	return tasks, err
}

// UpdateStatus updates the status of a task in the database
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint, status models.TaskStatus) error {
	return r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).Update(models.TaskStatusField, status).Error
}

// UpdateFields applies a partial field set to a task and returns the updated
// row
func (r *TaskRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Task, error) {
	if err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete deletes a task by ID from the database
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}
