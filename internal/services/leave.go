package services

import (
	"context"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
)

// Leave handles staff leave operations
type Leave struct {
	repo *repos.LeaveRepository
}

// NewLeaveService creates a new instance of the leave service
func NewLeaveService(repo *repos.LeaveRepository) *Leave {
	return &Leave{
		repo: repo,
	}
}

// Create creates a new leave entry
func (s *Leave) Create(ctx context.Context, leave *models.Leave) error {
	return s.repo.Create(ctx, leave)
}

// Get retrieves a leave entry by ID
func (s *Leave) Get(ctx context.Context, id uint) (*models.Leave, error) {
	return s.repo.Get(ctx, id)
}

// ListByStaff retrieves a staff member's leave entries with pagination
func (s *Leave) ListByStaff(ctx context.Context, staffID uint, opts *models.ListOptions) ([]models.Leave, error) {
	return s.repo.ListByStaff(ctx, staffID, opts)
}

// Delete deletes a leave entry
func (s *Leave) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
