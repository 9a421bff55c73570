package services

import (
	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/repository"
)

func (suite *ServiceTestSuite) TestTeamMembers() {
	team, err := suite.teams.CreateTeam(CreateTeamInput{Name: "Stamping"})
	suite.Require().NoError(err)
	zoe := suite.createUser("zoe@example.com")
	adam := suite.createUser("adam@example.com")

	_, err = suite.teams.AddMember(team.ID, zoe.ID)
	suite.Require().NoError(err)
	member, err := suite.teams.AddMember(team.ID, adam.ID)
	suite.Require().NoError(err)
	suite.False(member.JoinedAt.IsZero())

	_, err = suite.teams.AddMember(team.ID, adam.ID)
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	_, err = suite.teams.AddMember(team.ID, uuid.New())
	suite.True(apperrors.IsNotFound(err), "got %v", err)

	members, err := suite.teams.ListMembers(team.ID)
	suite.Require().NoError(err)
	suite.Require().Len(members, 2)
	suite.Equal("User adam@example.com", members[0].Name)

	suite.Require().NoError(suite.teams.RemoveMember(team.ID, adam.ID))
	suite.True(apperrors.IsNotFound(suite.teams.RemoveMember(team.ID, adam.ID)))
}

func (suite *ServiceTestSuite) TestTeam_DuplicateNameAndDelete() {
	team, err := suite.teams.CreateTeam(CreateTeamInput{Name: "Molding"})
	suite.Require().NoError(err)

	_, err = suite.teams.CreateTeam(CreateTeamInput{Name: "Molding"})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	project, err := suite.projects.CreateProject(CreateProjectInput{Name: "Grille", TeamID: &team.ID})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.teams.DeleteTeam(team.ID))

	found, err := suite.projects.GetProject(project.ID)
	suite.Require().NoError(err)
	suite.Nil(found.TeamID)

	teams, total, err := suite.teams.ListTeams(repository.ListOptions{})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(teams)
}
