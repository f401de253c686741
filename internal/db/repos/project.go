// Package repos provides database repository implementations
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/crewline/crewline/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create creates a new project in the database
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByCode retrieves a project by its short code from the database
func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx).Where(models.Project{Code: code})
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects from the database with pagination
func (r *ProjectRepository) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.WithContext(ctx)
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("id").Find(&projects).Error
	return projects, err
}

// ListAll retrieves every project without pagination. The derived progress
// and hours views need the full hierarchy in one pass.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("id").Find(&projects).Error
	return projects, err
}

// ListChildren retrieves the direct sub-projects of a parent project
func (r *ProjectRepository) ListChildren(ctx context.Context, parentID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id").Find(&projects).Error
	return projects, err
}

// Update persists the given project
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// UpdateFields applies a partial field set to a project and returns the
// updated row
func (r *ProjectRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*models.Project, error) {
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete deletes a project by ID from the database
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}
