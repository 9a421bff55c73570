package repository

import (
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

const constraintUserEmail = "idx_users_email"

var userSortColumns = sortColumns{
	"name":       "users.name",
	"email":      "users.email",
	"department": "users.department",
	"created_at": "users.created_at",
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return insert(r.db, user, &user.Base, "user", constraintUserEmail)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := first(r.db, &user, "user", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List lists users, by name by default
func (r *GormUserRepository) List(opts ListOptions) ([]models.User, int64, error) {
	var users []models.User
	total, err := list(r.db.Model(&models.User{}), &users, opts, userSortColumns, "users.name, users.id")
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return update(r.db, user, &user.Base, "user", constraintUserEmail)
}

// Delete deletes a user in a transaction. Projects, tasks, documents and
// history entries that point at the user are kept with the reference
// cleared; team memberships and project permissions are removed.
func (r *GormUserRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("responsible_user_id = ?", id).
			Update("responsible_user_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).Where("assigned_user_id = ?", id).
			Update("assigned_user_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Document{}).Where("uploaded_by_id = ?", id).
			Update("uploaded_by_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.HistoryLog{}).Where("user_id = ?", id).
			Update("user_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.ProjectPermission{}).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.User{}, "user", id)
	})
}

// ListTeams lists the teams a user belongs to, by name
func (r *GormUserRepository) ListTeams(userID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.name").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}
