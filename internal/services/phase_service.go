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
	"gorm.io/datatypes"
)

// PhaseService provides business logic for project phases.
type PhaseService struct {
	phases    repository.PhaseRepository
	projects  repository.ProjectRepository
	templates repository.PhaseTemplateRepository
	store     storage.FileStorage
	log       zerolog.Logger
}

// NewPhaseService creates a new PhaseService. store may be nil.
func NewPhaseService(
	phases repository.PhaseRepository,
	projects repository.ProjectRepository,
	templates repository.PhaseTemplateRepository,
	store storage.FileStorage,
) *PhaseService {
	return &PhaseService{
		phases:    phases,
		projects:  projects,
		templates: templates,
		store:     store,
		log:       logger.For("phase_service"),
	}
}

// CreatePhaseInput represents parameters to create a phase.
// Status defaults to PENDING.
type CreatePhaseInput struct {
	ProjectID         uuid.UUID          `json:"project_id" validate:"required"`
	TemplateID        *uuid.UUID         `json:"template_id"`
	Name              string             `json:"name" validate:"max=255"`
	Level             int                `json:"level" validate:"required,min=1"`
	Status            models.PhaseStatus `json:"status" validate:"omitempty,enum"`
	Configuration     datatypes.JSON     `json:"configuration" validate:"omitempty,json"`
	RequiredDocuments []string           `json:"required_documents"`
}

type UpdatePhaseInput struct {
	Name              *string             `json:"name" validate:"omitempty,max=255"`
	Level             *int                `json:"level" validate:"omitempty,min=1"`
	Status            *models.PhaseStatus `json:"status" validate:"omitempty,enum"`
	Configuration     datatypes.JSON      `json:"configuration" validate:"omitempty,json"`
	RequiredDocuments []string            `json:"required_documents"`
	TemplateID        *uuid.UUID          `json:"template_id"`
	ClearTemplate     bool                `json:"clear_template"`
}

// CreatePhase creates a phase. Levels are unique within a project; a
// taken level is a constraint violation.
func (s *PhaseService) CreatePhase(input CreatePhaseInput) (*models.Phase, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if input.TemplateID != nil {
		if _, err := s.templates.FindByID(*input.TemplateID); err != nil {
			return nil, fmt.Errorf("failed to find phase template: %w", err)
		}
	}

	phase := &models.Phase{
		ProjectID:         input.ProjectID,
		TemplateID:        input.TemplateID,
		Name:              input.Name,
		Level:             input.Level,
		Status:            input.Status,
		Configuration:     input.Configuration,
		RequiredDocuments: input.RequiredDocuments,
	}
	if err := s.phases.Create(phase); err != nil {
		return nil, fmt.Errorf("failed to create phase: %w", err)
	}
	return phase, nil
}

// GetPhase returns a phase with its template.
func (s *PhaseService) GetPhase(id uuid.UUID) (*models.Phase, error) {
	phase, err := s.phases.FindByID(id, "Template")
	if err != nil {
		return nil, fmt.Errorf("failed to find phase: %w", err)
	}
	return phase, nil
}

// ListForProject lists the phases of a project by level.
func (s *PhaseService) ListForProject(projectID uuid.UUID, opts repository.ListOptions) ([]models.Phase, int64, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, 0, fmt.Errorf("failed to find project: %w", err)
	}

	phases, total, err := s.phases.ListByProject(projectID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list phases: %w", err)
	}
	return phases, total, nil
}

func (s *PhaseService) UpdatePhase(id uuid.UUID, input UpdatePhaseInput) (*models.Phase, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	phase, err := s.phases.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase: %w", err)
	}

	if input.Name != nil {
		phase.Name = *input.Name
	}
	if input.Level != nil {
		phase.Level = *input.Level
	}
	if input.Status != nil {
		phase.Status = *input.Status
	}
	if input.Configuration != nil {
		phase.Configuration = input.Configuration
	}
	if input.RequiredDocuments != nil {
		phase.RequiredDocuments = input.RequiredDocuments
	}
	if input.ClearTemplate {
		phase.TemplateID = nil
	} else if input.TemplateID != nil {
		if _, err := s.templates.FindByID(*input.TemplateID); err != nil {
			return nil, fmt.Errorf("failed to find phase template: %w", err)
		}
		phase.TemplateID = input.TemplateID
	}

	if err := s.phases.Update(phase); err != nil {
		return nil, fmt.Errorf("failed to update phase: %w", err)
	}
	return phase, nil
}

// DeletePhase deletes a phase with its tasks, documents and phase
// history, then removes the stored files of its documents.
func (s *PhaseService) DeletePhase(ctx context.Context, id uuid.UUID) error {
	files, err := s.phases.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete phase: %w", err)
	}

	s.log.Info().
		Str("phase_id", id.String()).
		Int("documents", len(files)).
		Msg("Phase deleted")

	purgeFiles(ctx, s.store, s.log, files)
	return nil
}
