package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// UserService provides business logic for user operations.
type UserService struct {
	users       repository.UserRepository
	permissions repository.PermissionRepository
	tasks       repository.TaskRepository
	log         zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, permissions repository.PermissionRepository, tasks repository.TaskRepository) *UserService {
	return &UserService{
		users:       users,
		permissions: permissions,
		tasks:       tasks,
		log:         logger.For("user_service"),
	}
}

// CreateUserInput represents parameters to create a user.
// NotificationEmail defaults to true.
type CreateUserInput struct {
	Name              string `json:"name" validate:"required,max=150"`
	Email             string `json:"email" validate:"required,email,max=255"`
	Department        string `json:"department" validate:"max=100"`
	JobTitle          string `json:"job_title" validate:"max=100"`
	Role              string `json:"role" validate:"max=100"`
	NotificationEmail *bool  `json:"notification_email"`
}

// UpdateUserInput represents a partial update of a user.
type UpdateUserInput struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email             *string `json:"email" validate:"omitempty,email,max=255"`
	Department        *string `json:"department" validate:"omitempty,max=100"`
	JobTitle          *string `json:"job_title" validate:"omitempty,max=100"`
	Role              *string `json:"role" validate:"omitempty,max=100"`
	NotificationEmail *bool   `json:"notification_email"`
}

func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:              input.Name,
		Email:             input.Email,
		Department:        input.Department,
		JobTitle:          input.JobTitle,
		Role:              input.Role,
		NotificationEmail: true,
	}
	if input.NotificationEmail != nil {
		user.NotificationEmail = *input.NotificationEmail
	}

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers lists users, by name unless opts asks otherwise.
func (s *UserService) ListUsers(opts repository.ListOptions) ([]models.User, int64, error) {
	users, total, err := s.users.List(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *UserService) UpdateUser(id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.JobTitle != nil {
		user.JobTitle = *input.JobTitle
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.NotificationEmail != nil {
		user.NotificationEmail = *input.NotificationEmail
	}

	if err := s.users.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser deletes a user. Work the user was responsible for, assigned
// to, uploaded or logged stays in place without the reference.
func (s *UserService) DeleteUser(id uuid.UUID) error {
	if err := s.users.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.log.Info().Str("user_id", id.String()).Msg("User deleted")
	return nil
}

func (s *UserService) ListTeams(userID uuid.UUID) ([]models.Team, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	teams, err := s.users.ListTeams(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// ListPermissions lists the project permissions held by a user.
func (s *UserService) ListPermissions(userID uuid.UUID) ([]models.ProjectPermission, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	permissions, err := s.permissions.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

// ListAssignedTasks lists the tasks assigned to a user across projects.
func (s *UserService) ListAssignedTasks(userID uuid.UUID, opts repository.ListOptions) ([]models.Task, int64, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, 0, fmt.Errorf("failed to find user: %w", err)
	}

	tasks, total, err := s.tasks.List(repository.TaskFilter{
		AssignedUserID: &userID,
		ListOptions:    opts,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}
