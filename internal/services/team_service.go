package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// TeamService provides business logic for teams and their members.
type TeamService struct {
	teams repository.TeamRepository
	users repository.UserRepository
	log   zerolog.Logger
}

// NewTeamService creates a new TeamService.
func NewTeamService(teams repository.TeamRepository, users repository.UserRepository) *TeamService {
	return &TeamService{
		teams: teams,
		users: users,
		log:   logger.For("team_service"),
	}
}

type CreateTeamInput struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
}

type UpdateTeamInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description"`
}

func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.teams.Create(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *TeamService) GetTeam(id uuid.UUID) (*models.Team, error) {
	team, err := s.teams.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func (s *TeamService) ListTeams(opts repository.ListOptions) ([]models.Team, int64, error) {
	teams, total, err := s.teams.List(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, total, nil
}

func (s *TeamService) UpdateTeam(id uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	team, err := s.teams.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if input.Name != nil {
		team.Name = *input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.teams.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return team, nil
}

// DeleteTeam deletes a team. Its projects stay without a team.
func (s *TeamService) DeleteTeam(id uuid.UUID) error {
	if err := s.teams.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.log.Info().Str("team_id", id.String()).Msg("Team deleted")
	return nil
}

// AddMember adds a user to a team. Adding an existing member is a
// constraint violation.
func (s *TeamService) AddMember(teamID, userID uuid.UUID) (*models.TeamMember, error) {
	if _, err := s.teams.FindByID(teamID); err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: userID,
	}
	if err := s.teams.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}
	return member, nil
}

func (s *TeamService) RemoveMember(teamID, userID uuid.UUID) error {
	if err := s.teams.RemoveMember(teamID, userID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return nil
}

// ListMembers lists the users of a team by name.
func (s *TeamService) ListMembers(teamID uuid.UUID) ([]models.User, error) {
	if _, err := s.teams.FindByID(teamID); err != nil {
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teams.ListMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}
