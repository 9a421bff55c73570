package services

import (
	"errors"

	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
)

func (suite *ServiceTestSuite) TestCreateUser_NotificationDefaultsOn() {
	user := suite.createUser("ana@example.com")
	suite.True(user.NotificationEmail)

	off := false
	quiet, err := suite.users.CreateUser(CreateUserInput{Name: "Quiet", Email: "quiet@example.com", NotificationEmail: &off})
	suite.Require().NoError(err)

	found, err := suite.users.GetUser(quiet.ID)
	suite.Require().NoError(err)
	suite.False(found.NotificationEmail)
}

func (suite *ServiceTestSuite) TestCreateUser_Validation() {
	_, err := suite.users.CreateUser(CreateUserInput{Name: "Bad", Email: "not-an-email"})
	suite.Require().True(apperrors.IsValidation(err), "got %v", err)

	var appErr *apperrors.Error
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(map[string]string{"email": "email"}, appErr.Details)
}

func (suite *ServiceTestSuite) TestCreateUser_DuplicateEmail() {
	suite.createUser("dup@example.com")

	_, err := suite.users.CreateUser(CreateUserInput{Name: "Again", Email: "dup@example.com"})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestUpdateUser() {
	user := suite.createUser("bo@example.com")

	dept := "Supplier Quality"
	updated, err := suite.users.UpdateUser(user.ID, UpdateUserInput{Department: &dept})
	suite.Require().NoError(err)
	suite.Equal("Supplier Quality", updated.Department)
	suite.Equal("bo@example.com", updated.Email)

	found, err := suite.users.GetUserByEmail("bo@example.com")
	suite.Require().NoError(err)
	suite.Equal("Supplier Quality", found.Department)
}

func (suite *ServiceTestSuite) TestUserLookups() {
	user := suite.createUser("cy@example.com")
	project := suite.createProject("Bumper")
	phase := suite.createPhase(project, 1)

	_, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "Gauge study", AssignedUserID: &user.ID})
	suite.Require().NoError(err)
	_, err = suite.permissions.Grant(GrantPermissionInput{UserID: user.ID, ProjectID: project.ID})
	suite.Require().NoError(err)
	team, err := suite.teams.CreateTeam(CreateTeamInput{Name: "Launch"})
	suite.Require().NoError(err)
	_, err = suite.teams.AddMember(team.ID, user.ID)
	suite.Require().NoError(err)

	tasks, total, err := suite.users.ListAssignedTasks(user.ID, repository.ListOptions{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Gauge study", tasks[0].Name)

	permissions, err := suite.users.ListPermissions(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(permissions, 1)
	suite.Equal(models.PermissionRead, permissions[0].PermissionLevel)

	teams, err := suite.users.ListTeams(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(teams, 1)
	suite.Equal("Launch", teams[0].Name)
}

func (suite *ServiceTestSuite) TestDeleteUser_TaskSurvivesUnassigned() {
	user := suite.createUser("gone@example.com")
	phase := suite.createPhase(suite.createProject("Mirror"), 1)

	task, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "Fit check", AssignedUserID: &user.ID})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.users.DeleteUser(user.ID))

	found, err := suite.tasks.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Nil(found.AssignedUserID)
	suite.Nil(found.AssignedUser)

	_, err = suite.users.GetUser(user.ID)
	suite.True(apperrors.IsNotFound(err))
}
