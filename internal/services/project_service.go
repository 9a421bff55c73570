package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/storage"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// ProjectService provides business logic for projects.
type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
	teams    repository.TeamRepository
	store    storage.FileStorage
	log      zerolog.Logger
}

// NewProjectService creates a new ProjectService. store may be nil, in
// which case deleting a project leaves stored documents untouched.
func NewProjectService(
	projects repository.ProjectRepository,
	users repository.UserRepository,
	teams repository.TeamRepository,
	store storage.FileStorage,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		teams:    teams,
		store:    store,
		log:      logger.For("project_service"),
	}
}

// CreateProjectInput represents parameters to create a project.
// Status defaults to PLANNING.
type CreateProjectInput struct {
	Name              string               `json:"name" validate:"required,max=255"`
	Description       string               `json:"description"`
	Status            models.ProjectStatus `json:"status" validate:"omitempty,enum"`
	ResponsibleUserID *uuid.UUID           `json:"responsible_user_id"`
	TeamID            *uuid.UUID           `json:"team_id"`
}

// UpdateProjectInput represents a partial update of a project. The Clear
// flags remove the optional references.
type UpdateProjectInput struct {
	Name                 *string               `json:"name" validate:"omitempty,min=1,max=255"`
	Description          *string               `json:"description"`
	Status               *models.ProjectStatus `json:"status" validate:"omitempty,enum"`
	ResponsibleUserID    *uuid.UUID            `json:"responsible_user_id"`
	ClearResponsibleUser bool                  `json:"clear_responsible_user"`
	TeamID               *uuid.UUID            `json:"team_id"`
	ClearTeam            bool                  `json:"clear_team"`
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	Status            *models.ProjectStatus
	TeamID            *uuid.UUID
	ResponsibleUserID *uuid.UUID
	repository.ListOptions
}

func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(input.ResponsibleUserID, input.TeamID); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:              input.Name,
		Description:       input.Description,
		Status:            input.Status,
		ResponsibleUserID: input.ResponsibleUserID,
		TeamID:            input.TeamID,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project with its responsible user and team.
func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.FindByID(id, "ResponsibleUser", "Team")
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(input ListProjectsInput) ([]models.Project, int64, error) {
	if input.Status != nil {
		if err := validation.Enum("status", *input.Status); err != nil {
			return nil, 0, err
		}
	}

	projects, total, err := s.projects.List(repository.ProjectFilter{
		Status:            input.Status,
		TeamID:            input.TeamID,
		ResponsibleUserID: input.ResponsibleUserID,
		ListOptions:       input.ListOptions,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

func (s *ProjectService) UpdateProject(id uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if err := s.checkReferences(input.ResponsibleUserID, input.TeamID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.ClearResponsibleUser {
		project.ResponsibleUserID = nil
	} else if input.ResponsibleUserID != nil {
		project.ResponsibleUserID = input.ResponsibleUserID
	}
	if input.ClearTeam {
		project.TeamID = nil
	} else if input.TeamID != nil {
		project.TeamID = input.TeamID
	}

	if err := s.projects.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject deletes a project with its phases, tasks, documents,
// history, permissions and client links, then removes the stored files
// of its documents.
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	files, err := s.projects.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.Info().
		Str("project_id", id.String()).
		Int("documents", len(files)).
		Msg("Project deleted")

	purgeFiles(ctx, s.store, s.log, files)
	return nil
}

func (s *ProjectService) checkReferences(userID, teamID *uuid.UUID) error {
	if userID != nil {
		if _, err := s.users.FindByID(*userID); err != nil {
			return fmt.Errorf("failed to find responsible user: %w", err)
		}
	}
	if teamID != nil {
		if _, err := s.teams.FindByID(*teamID); err != nil {
			return fmt.Errorf("failed to find team: %w", err)
		}
	}
	return nil
}
