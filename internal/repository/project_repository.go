package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

var projectSortColumns = sortColumns{
	"name":       "projects.name",
	"status":     "projects.status",
	"created_at": "projects.created_at",
	"updated_at": "projects.updated_at",
}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}
	return insert(r.db, project, &project.Base, "project", "")
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uuid.UUID, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := first(query, &project, "project", id); err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects with filtering and pagination
func (r *GormProjectRepository) List(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{})

	if filter.Status != nil {
		query = query.Where("projects.status = ?", *filter.Status)
	}
	if filter.TeamID != nil {
		query = query.Where("projects.team_id = ?", *filter.TeamID)
	}
	if filter.ResponsibleUserID != nil {
		query = query.Where("projects.responsible_user_id = ?", *filter.ResponsibleUserID)
	}

	total, err := list(query, &projects, filter.ListOptions, projectSortColumns, "projects.name, projects.id")
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return update(r.db, project, &project.Base, "project", "")
}

// Delete deletes a project and everything it owns in a transaction and
// returns the storage references of the removed documents
func (r *GormProjectRepository) Delete(id uuid.UUID) ([]string, error) {
	var files []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.HistoryLog{}).Error; err != nil {
			return err
		}

		var phaseIDs []uuid.UUID
		if err := tx.Model(&models.Phase{}).Where("project_id = ?", id).Pluck("id", &phaseIDs).Error; err != nil {
			return err
		}

		var err error
		if files, err = deletePhaseChildren(tx, phaseIDs); err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Phase{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectPermission{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectClient{}).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.Project{}, "project", id)
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
