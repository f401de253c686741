package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/crewline/crewline/internal/db/models"
)

// LeaveRepository handles database operations for staff leave entries
type LeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new instance of LeaveRepository
func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{
		db: db,
	}
}

// Create creates a new leave entry in the database
func (r *LeaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

// Get retrieves a leave entry by ID from the database
func (r *LeaveRepository) Get(ctx context.Context, id uint) (*models.Leave, error) {
	var leave models.Leave
	if err := r.db.WithContext(ctx).First(&leave, id).Error; err != nil {
		return nil, err
	}
	return &leave, nil
}

// ListByStaff retrieves all leave entries for a staff member with pagination
func (r *LeaveRepository) ListByStaff(ctx context.Context, staffID uint, opts *models.ListOptions) ([]models.Leave, error) {
	var leaves []models.Leave
	query := r.db.WithContext(ctx).Where(models.Leave{StaffID: staffID})
	if opts != nil {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := query.Order("start_date").Find(&leaves).Error
	return leaves, err
}

// Delete deletes a leave entry by ID from the database
func (r *LeaveRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Leave{}, id).Error
}
