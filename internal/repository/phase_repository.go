package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

const constraintPhaseLevel = "idx_phases_project_level"

var phaseSortColumns = sortColumns{
	"level":      "phases.level",
	"name":       "phases.name",
	"status":     "phases.status",
	"created_at": "phases.created_at",
}

// GormPhaseRepository is a GORM implementation of PhaseRepository
type GormPhaseRepository struct {
	db *gorm.DB
}

// NewPhaseRepository creates a new PhaseRepository
func NewPhaseRepository(db *gorm.DB) PhaseRepository {
	return &GormPhaseRepository{db: db}
}

// Create creates a new phase
func (r *GormPhaseRepository) Create(phase *models.Phase) error {
	if phase.Status == "" {
		phase.Status = models.PhaseStatusPending
	}
	return insert(r.db, phase, &phase.Base, "phase", constraintPhaseLevel)
}

// FindByID finds a phase by ID with optional preloading
func (r *GormPhaseRepository) FindByID(id uuid.UUID, preload ...string) (*models.Phase, error) {
	var phase models.Phase
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := first(query, &phase, "phase", id); err != nil {
		return nil, err
	}
	return &phase, nil
}

// ListByProject lists the phases of a project
func (r *GormPhaseRepository) ListByProject(projectID uuid.UUID, opts ListOptions) ([]models.Phase, int64, error) {
	var phases []models.Phase
	query := r.db.Model(&models.Phase{}).Where("phases.project_id = ?", projectID)

	total, err := list(query, &phases, opts, phaseSortColumns, "phases.project_id, phases.level")
	if err != nil {
		return nil, 0, err
	}
	return phases, total, nil
}

// Update updates a phase
func (r *GormPhaseRepository) Update(phase *models.Phase) error {
	return update(r.db, phase, &phase.Base, "phase", constraintPhaseLevel)
}

// Delete deletes a phase and everything it owns in a transaction and
// returns the storage references of the removed documents
func (r *GormPhaseRepository) Delete(id uuid.UUID) ([]string, error) {
	var files []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if files, err = deletePhaseChildren(tx, []uuid.UUID{id}); err != nil {
			return err
		}

		return deleteByID(tx, &models.Phase{}, "phase", id)
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// deletePhaseChildren removes the tasks, documents and phase history of
// the given phases and returns the files of the removed documents. History
// entries of other phases that point at one of the removed tasks keep the
// entry and lose the task reference.
func deletePhaseChildren(tx *gorm.DB, phaseIDs []uuid.UUID) ([]string, error) {
	if len(phaseIDs) == 0 {
		return nil, nil
	}

	if err := tx.Where("phase_id IN ?", phaseIDs).Delete(&models.HistoryLog{}).Error; err != nil {
		return nil, err
	}

	var taskIDs []uuid.UUID
	if err := tx.Model(&models.Task{}).Where("phase_id IN ?", phaseIDs).Pluck("id", &taskIDs).Error; err != nil {
		return nil, err
	}

	if len(taskIDs) > 0 {
		if err := tx.Model(&models.HistoryLog{}).Where("task_id IN ?", taskIDs).
			Update("task_id", nil).Error; err != nil {
			return nil, err
		}

		if err := tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error; err != nil {
			return nil, err
		}
	}

	var files []string
	if err := tx.Model(&models.Document{}).Where("phase_id IN ?", phaseIDs).Pluck("file", &files).Error; err != nil {
		return nil, err
	}

	if err := tx.Where("phase_id IN ?", phaseIDs).Delete(&models.Document{}).Error; err != nil {
		return nil, err
	}
	return files, nil
}
