package services

import (
	"context"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/tracking"
)

// User handles staff-related operations
type User struct {
	repo *repos.UserRepository
}

// NewUserService creates a new instance of the user service
func NewUserService(repo *repos.UserRepository) *User {
	return &User{
		repo: repo,
	}
}

// CreateUser creates a new user
func (s *User) CreateUser(ctx context.Context, user *models.User) error {
	return s.repo.CreateUser(ctx, user)
}

// GetUserByID retrieves a user by ID
func (s *User) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetUserByUsername retrieves a user by username
func (s *User) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

// GetUsers retrieves all users with pagination
func (s *User) GetUsers(ctx context.Context, opts *models.ListOptions) ([]models.User, error) {
	return s.repo.GetUsers(ctx, opts)
}

// DeleteUser deletes a user. Only the admin tier may delete staff.
func (s *User) DeleteUser(ctx context.Context, id uint, actor Actor) error {
	if !tracking.CanManage(actor.Role, tracking.ActionDeleteStaff, nil, actor.ID) {
		return ErrNotAuthorized
	}
	return s.repo.DeleteUser(ctx, id)
}
