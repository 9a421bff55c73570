package repository

import (
	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	constraintClientEmail   = "idx_clients_email"
	constraintProjectClient = "project_clients_pkey"
)

var clientSortColumns = sortColumns{
	"name":       "clients.name",
	"email":      "clients.email",
	"created_at": "clients.created_at",
}

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(client *models.Client) error {
	return insert(r.db, client, &client.Base, "client", constraintClientEmail)
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := first(r.db, &client, "client", id); err != nil {
		return nil, err
	}
	return &client, nil
}

// List lists clients, by name by default
func (r *GormClientRepository) List(opts ListOptions) ([]models.Client, int64, error) {
	var clients []models.Client
	total, err := list(r.db.Model(&models.Client{}), &clients, opts, clientSortColumns, "clients.name, clients.id")
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Update updates a client
func (r *GormClientRepository) Update(client *models.Client) error {
	return update(r.db, client, &client.Base, "client", constraintClientEmail)
}

// Delete deletes a client and its project links in a transaction
func (r *GormClientRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.ProjectClient{}).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.Client{}, "client", id)
	})
}

// LinkProject records that a project is delivered to a client
func (r *GormClientRepository) LinkProject(link *models.ProjectClient) error {
	if link.LinkedAt.IsZero() {
		link.LinkedAt = now()
	}
	err := r.db.Omit(clause.Associations).Create(link).Error
	return translate(err, "project client", constraintProjectClient)
}

// UnlinkProject removes the link between a project and a client
func (r *GormClientRepository) UnlinkProject(projectID, clientID uuid.UUID) error {
	res := r.db.Where("project_id = ? AND client_id = ?", projectID, clientID).Delete(&models.ProjectClient{})
	if res.Error != nil {
		return translate(res.Error, "project client", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("project client", clientID)
	}
	return nil
}

// ListProjects lists the projects of a client, by name
func (r *GormClientRepository) ListProjects(clientID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_clients ON project_clients.project_id = projects.id").
		Where("project_clients.client_id = ?", clientID).
		Order("projects.name").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByProject lists the clients of a project, by name
func (r *GormClientRepository) ListByProject(projectID uuid.UUID) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.
		Joins("JOIN project_clients ON project_clients.client_id = clients.id").
		Where("project_clients.project_id = ?", projectID).
		Order("clients.name").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}
