package repository

import (
	"errors"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	constraintTeamName   = "idx_teams_name"
	constraintTeamMember = "team_members_pkey"
)

var teamSortColumns = sortColumns{
	"name":       "teams.name",
	"created_at": "teams.created_at",
}

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// Create creates a new team
func (r *GormTeamRepository) Create(team *models.Team) error {
	return insert(r.db, team, &team.Base, "team", constraintTeamName)
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := first(r.db, &team, "team", id); err != nil {
		return nil, err
	}
	return &team, nil
}

// List lists teams, by name by default
func (r *GormTeamRepository) List(opts ListOptions) ([]models.Team, int64, error) {
	var teams []models.Team
	total, err := list(r.db.Model(&models.Team{}), &teams, opts, teamSortColumns, "teams.name, teams.id")
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return update(r.db, team, &team.Base, "team", constraintTeamName)
}

// Delete deletes a team and its memberships in a transaction; projects of
// the team are kept without a team
func (r *GormTeamRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		return deleteByID(tx, &models.Team{}, "team", id)
	})
}

// AddMember adds a user to a team
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = now()
	}
	err := r.db.Omit(clause.Associations).Create(member).Error
	return translate(err, "team member", constraintTeamMember)
}

// RemoveMember removes a user from a team
func (r *GormTeamRepository) RemoveMember(teamID, userID uuid.UUID) error {
	res := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{})
	if res.Error != nil {
		return translate(res.Error, "team member", "")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("team member", userID)
	}
	return nil
}

// FindMember finds a specific team membership
func (r *GormTeamRepository) FindMember(teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("team member", userID)
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists the users of a team, by name
func (r *GormTeamRepository) ListMembers(teamID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN team_members ON team_members.user_id = users.id").
		Where("team_members.team_id = ?", teamID).
		Order("users.name").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
