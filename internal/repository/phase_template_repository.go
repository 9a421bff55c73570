package repository

import (
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

const constraintTemplateName = "idx_phase_templates_name"

var templateSortColumns = sortColumns{
	"name":       "phase_templates.name",
	"level":      "phase_templates.level",
	"created_at": "phase_templates.created_at",
}

// GormPhaseTemplateRepository is a GORM implementation of PhaseTemplateRepository
type GormPhaseTemplateRepository struct {
	db *gorm.DB
}

// NewPhaseTemplateRepository creates a new PhaseTemplateRepository
func NewPhaseTemplateRepository(db *gorm.DB) PhaseTemplateRepository {
	return &GormPhaseTemplateRepository{db: db}
}

func (r *GormPhaseTemplateRepository) Create(template *models.PhaseTemplate) error {
	return insert(r.db, template, &template.Base, "phase template", constraintTemplateName)
}

func (r *GormPhaseTemplateRepository) FindByID(id uuid.UUID) (*models.PhaseTemplate, error) {
	var template models.PhaseTemplate
	if err := first(r.db, &template, "phase template", id); err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormPhaseTemplateRepository) FindByName(name string) (*models.PhaseTemplate, error) {
	var template models.PhaseTemplate
	err := r.db.Where("name = ?", name).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("phase template", name)
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *GormPhaseTemplateRepository) List(opts ListOptions) ([]models.PhaseTemplate, int64, error) {
	var templates []models.PhaseTemplate
	total, err := list(r.db.Model(&models.PhaseTemplate{}), &templates, opts, templateSortColumns, "phase_templates.name, phase_templates.id")
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

func (r *GormPhaseTemplateRepository) Update(template *models.PhaseTemplate) error {
	return update(r.db, template, &template.Base, "phase template", constraintTemplateName)
}

// Delete deletes a template; phases created from it are detached
func (r *GormPhaseTemplateRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Phase{}).Where("template_id = ?", id).
			Update("template_id", nil).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.PhaseTemplate{}, "phase template", id)
	})
}
