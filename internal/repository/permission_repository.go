package repository

import (
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

const constraintPermissionUserProject = "idx_project_permissions_user_project"

var permissionSortColumns = sortColumns{
	"permission_level": "project_permissions.permission_level",
	"granted_at":       "project_permissions.granted_at",
}

// GormPermissionRepository is a GORM implementation of PermissionRepository
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &GormPermissionRepository{db: db}
}

// Create grants a permission. The level defaults to read.
func (r *GormPermissionRepository) Create(permission *models.ProjectPermission) error {
	if permission.PermissionLevel == "" {
		permission.PermissionLevel = models.PermissionRead
	}
	if permission.GrantedAt.IsZero() {
		permission.GrantedAt = now()
	}
	return insert(r.db, permission, &permission.Base, "project permission", constraintPermissionUserProject)
}

// FindByID finds a permission by ID
func (r *GormPermissionRepository) FindByID(id uuid.UUID) (*models.ProjectPermission, error) {
	var permission models.ProjectPermission
	if err := first(r.db, &permission, "project permission", id); err != nil {
		return nil, err
	}
	return &permission, nil
}

// Find finds the permission a user holds on a project
func (r *GormPermissionRepository) Find(userID, projectID uuid.UUID) (*models.ProjectPermission, error) {
	var permission models.ProjectPermission
	err := r.db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&permission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("project permission", userID)
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// ListByProject lists the permissions on a project with their users
func (r *GormPermissionRepository) ListByProject(projectID uuid.UUID, opts ListOptions) ([]models.ProjectPermission, int64, error) {
	var permissions []models.ProjectPermission
	query := r.db.Model(&models.ProjectPermission{}).
		Where("project_permissions.project_id = ?", projectID)

	total, err := list(query, &permissions, opts, permissionSortColumns, "project_permissions.granted_at, project_permissions.id", "User")
	if err != nil {
		return nil, 0, err
	}
	return permissions, total, nil
}

// ListByUser lists the permissions a user holds with their projects
func (r *GormPermissionRepository) ListByUser(userID uuid.UUID) ([]models.ProjectPermission, error) {
	var permissions []models.ProjectPermission
	err := r.db.Preload("Project").
		Where("user_id = ?", userID).
		Order("granted_at").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// Update updates a permission
func (r *GormPermissionRepository) Update(permission *models.ProjectPermission) error {
	return update(r.db, permission, &permission.Base, "project permission", constraintPermissionUserProject)
}

// Delete revokes a permission
func (r *GormPermissionRepository) Delete(id uuid.UUID) error {
	return deleteByID(r.db, &models.ProjectPermission{}, "project permission", id)
}
