package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

// Tasks are ordered through their phase: project, then phase level, then
// creation time.
const taskDefaultOrder = "phases.project_id, phases.level, tasks.created_at, tasks.id"

var taskSortColumns = sortColumns{
	"name":        "tasks.name",
	"status":      "tasks.status",
	"due_date":    "tasks.due_date",
	"created_at":  "tasks.created_at",
	"phase_level": "phases.level",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	return insert(r.db, task, &task.Base, "task", "")
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uuid.UUID, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := first(query, &task, "task", id); err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).
		Joins("JOIN phases ON phases.id = tasks.phase_id")

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("phases.project_id = ?", *filter.ProjectID)
	}
	if filter.PhaseID != nil {
		query = query.Where("tasks.phase_id = ?", *filter.PhaseID)
	}
	if filter.AssignedUserID != nil {
		query = query.Where("tasks.assigned_user_id = ?", *filter.AssignedUserID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.DueBefore != nil {
		query = query.Where("tasks.due_date < ?", *filter.DueBefore)
	}

	total, err := list(query, &tasks, filter.ListOptions, taskSortColumns, taskDefaultOrder)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return update(r.db, task, &task.Base, "task", "")
}

// Delete deletes a task; history entries that mention it lose the reference
func (r *GormTaskRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.HistoryLog{}).Where("task_id = ?", id).
			Update("task_id", nil).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.Task{}, "task", id)
	})
}
