package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
	"gorm.io/datatypes"
)

// PhaseTemplateService manages phase templates and creates phases from them.
type PhaseTemplateService struct {
	templates repository.PhaseTemplateRepository
	phases    repository.PhaseRepository
	projects  repository.ProjectRepository
	log       zerolog.Logger
}

// NewPhaseTemplateService creates a new PhaseTemplateService.
func NewPhaseTemplateService(templates repository.PhaseTemplateRepository, phases repository.PhaseRepository, projects repository.ProjectRepository) *PhaseTemplateService {
	return &PhaseTemplateService{
		templates: templates,
		phases:    phases,
		projects:  projects,
		log:       logger.For("phase_template_service"),
	}
}

type CreatePhaseTemplateInput struct {
	Name        string         `json:"name" validate:"required,max=255"`
	Description string         `json:"description"`
	Content     datatypes.JSON `json:"content" validate:"omitempty,json"`
	Level       *int           `json:"level" validate:"omitempty,min=1"`
}

type UpdatePhaseTemplateInput struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string        `json:"description"`
	Content     datatypes.JSON `json:"content" validate:"omitempty,json"`
	Level       *int           `json:"level" validate:"omitempty,min=1"`
	ClearLevel  bool           `json:"clear_level"`
}

// InstantiatePhaseInput overrides the template defaults of a new phase.
type InstantiatePhaseInput struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Level *int    `json:"level" validate:"omitempty,min=1"`
}

// templateContent is the shape of template content the instantiation
// understands. Other keys are carried over untouched.
type templateContent struct {
	Documents []string `json:"documents"`
}

func (s *PhaseTemplateService) CreateTemplate(input CreatePhaseTemplateInput) (*models.PhaseTemplate, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	template := &models.PhaseTemplate{
		Name:        input.Name,
		Description: input.Description,
		Content:     input.Content,
		Level:       input.Level,
	}
	if err := s.templates.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create phase template: %w", err)
	}
	return template, nil
}

func (s *PhaseTemplateService) GetTemplate(id uuid.UUID) (*models.PhaseTemplate, error) {
	template, err := s.templates.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase template: %w", err)
	}
	return template, nil
}

func (s *PhaseTemplateService) ListTemplates(opts repository.ListOptions) ([]models.PhaseTemplate, int64, error) {
	templates, total, err := s.templates.List(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list phase templates: %w", err)
	}
	return templates, total, nil
}

func (s *PhaseTemplateService) UpdateTemplate(id uuid.UUID, input UpdatePhaseTemplateInput) (*models.PhaseTemplate, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	template, err := s.templates.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase template: %w", err)
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.Description != nil {
		template.Description = *input.Description
	}
	if input.Content != nil {
		template.Content = input.Content
	}
	if input.ClearLevel {
		template.Level = nil
	} else if input.Level != nil {
		template.Level = input.Level
	}

	if err := s.templates.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update phase template: %w", err)
	}
	return template, nil
}

// DeleteTemplate deletes a template. Phases created from it are kept.
func (s *PhaseTemplateService) DeleteTemplate(id uuid.UUID) error {
	if err := s.templates.Delete(id); err != nil {
		return fmt.Errorf("failed to delete phase template: %w", err)
	}
	return nil
}

// InstantiatePhase creates a phase of a project from a template. The
// template content becomes the phase configuration, its "documents" list
// becomes the required documents, and name and level default to the
// template's.
func (s *PhaseTemplateService) InstantiatePhase(templateID, projectID uuid.UUID, input InstantiatePhaseInput) (*models.Phase, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	template, err := s.templates.FindByID(templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find phase template: %w", err)
	}
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	phase := &models.Phase{
		ProjectID:     projectID,
		TemplateID:    &template.ID,
		Name:          template.Name,
		Configuration: template.Content,
	}

	switch {
	case input.Level != nil:
		phase.Level = *input.Level
	case template.Level != nil:
		phase.Level = *template.Level
	default:
		return nil, apperrors.Validation("invalid phase", map[string]string{"level": "required"})
	}
	if input.Name != nil {
		phase.Name = *input.Name
	}

	if len(template.Content) > 0 {
		// Content that is not an object with a documents list still
		// becomes the configuration, with no required documents.
		var content templateContent
		if err := json.Unmarshal(template.Content, &content); err != nil {
			s.log.Debug().Err(err).
				Str("template_id", template.ID.String()).
				Msg("Template content has no documents list")
		} else {
			phase.RequiredDocuments = content.Documents
		}
	}

	if err := s.phases.Create(phase); err != nil {
		return nil, fmt.Errorf("failed to create phase: %w", err)
	}
	return phase, nil
}
