package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

var historySortColumns = sortColumns{
	"timestamp": "history_logs.timestamp",
	"status":    "history_logs.status",
}

// GormHistoryLogRepository is a GORM implementation of HistoryLogRepository
type GormHistoryLogRepository struct {
	db *gorm.DB
}

// NewHistoryLogRepository creates a new HistoryLogRepository
func NewHistoryLogRepository(db *gorm.DB) HistoryLogRepository {
	return &GormHistoryLogRepository{db: db}
}

// Create records a history entry
func (r *GormHistoryLogRepository) Create(entry *models.HistoryLog) error {
	if entry.Status == "" {
		entry.Status = models.LogStatusInfo
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now()
	}
	return insert(r.db, entry, &entry.Base, "history log", "")
}

// FindByID finds a history entry by ID
func (r *GormHistoryLogRepository) FindByID(id uuid.UUID) (*models.HistoryLog, error) {
	var entry models.HistoryLog
	if err := first(r.db, &entry, "history log", id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List retrieves history entries with filtering and pagination
func (r *GormHistoryLogRepository) List(filter HistoryFilter) ([]models.HistoryLog, int64, error) {
	var entries []models.HistoryLog

	query := r.db.Model(&models.HistoryLog{})

	if filter.ProjectID != nil {
		query = query.Where("history_logs.project_id = ?", *filter.ProjectID)
	}
	if filter.PhaseID != nil {
		query = query.Where("history_logs.phase_id = ?", *filter.PhaseID)
	}
	if filter.TaskID != nil {
		query = query.Where("history_logs.task_id = ?", *filter.TaskID)
	}
	if filter.UserID != nil {
		query = query.Where("history_logs.user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("history_logs.status = ?", *filter.Status)
	}

	total, err := list(query, &entries, filter.ListOptions, historySortColumns, "history_logs.timestamp DESC, history_logs.id")
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Delete deletes a history entry
func (r *GormHistoryLogRepository) Delete(id uuid.UUID) error {
	return deleteByID(r.db, &models.HistoryLog{}, "history log", id)
}
