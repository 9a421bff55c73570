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

// PermissionService manages the access levels users hold on projects.
// It records grants; enforcing them is up to the caller.
type PermissionService struct {
	permissions repository.PermissionRepository
	users       repository.UserRepository
	projects    repository.ProjectRepository
	log         zerolog.Logger
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(permissions repository.PermissionRepository, users repository.UserRepository, projects repository.ProjectRepository) *PermissionService {
	return &PermissionService{
		permissions: permissions,
		users:       users,
		projects:    projects,
		log:         logger.For("permission_service"),
	}
}

// GrantPermissionInput represents a new grant. Level defaults to READ.
type GrantPermissionInput struct {
	UserID    uuid.UUID              `json:"user_id" validate:"required"`
	ProjectID uuid.UUID              `json:"project_id" validate:"required"`
	Level     models.PermissionLevel `json:"permission_level" validate:"omitempty,enum"`
}

// Grant gives a user a permission level on a project. A user holds at
// most one permission per project; a second grant is a constraint
// violation, use UpdateLevel instead.
func (s *PermissionService) Grant(input GrantPermissionInput) (*models.ProjectPermission, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(input.UserID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	permission := &models.ProjectPermission{
		UserID:          input.UserID,
		ProjectID:       input.ProjectID,
		PermissionLevel: input.Level,
	}
	if err := s.permissions.Create(permission); err != nil {
		return nil, fmt.Errorf("failed to grant permission: %w", err)
	}

	s.log.Info().
		Str("user_id", input.UserID.String()).
		Str("project_id", input.ProjectID.String()).
		Str("level", string(permission.PermissionLevel)).
		Msg("Permission granted")

	return permission, nil
}

func (s *PermissionService) GetPermission(id uuid.UUID) (*models.ProjectPermission, error) {
	permission, err := s.permissions.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	return permission, nil
}

// GetUserPermission returns the permission a user holds on a project.
func (s *PermissionService) GetUserPermission(userID, projectID uuid.UUID) (*models.ProjectPermission, error) {
	permission, err := s.permissions.Find(userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	return permission, nil
}

func (s *PermissionService) UpdateLevel(id uuid.UUID, level models.PermissionLevel) (*models.ProjectPermission, error) {
	if err := validation.Enum("permission_level", level); err != nil {
		return nil, err
	}

	permission, err := s.permissions.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}

	permission.PermissionLevel = level
	if err := s.permissions.Update(permission); err != nil {
		return nil, fmt.Errorf("failed to update permission: %w", err)
	}
	return permission, nil
}

func (s *PermissionService) Revoke(id uuid.UUID) error {
	if err := s.permissions.Delete(id); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}

	s.log.Info().Str("permission_id", id.String()).Msg("Permission revoked")
	return nil
}

// ListForProject lists the grants on a project in the order they were made.
func (s *PermissionService) ListForProject(projectID uuid.UUID, opts repository.ListOptions) ([]models.ProjectPermission, int64, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, 0, fmt.Errorf("failed to find project: %w", err)
	}

	permissions, total, err := s.permissions.ListByProject(projectID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, total, nil
}
