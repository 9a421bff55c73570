package services

import (
	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
)

func (suite *ServiceTestSuite) TestGrant_OnePerUserAndProject() {
	user := suite.createUser("eve@example.com")
	project := suite.createProject("Hood")

	permission, err := suite.permissions.Grant(GrantPermissionInput{UserID: user.ID, ProjectID: project.ID})
	suite.Require().NoError(err)
	suite.Equal(models.PermissionRead, permission.PermissionLevel)

	_, err = suite.permissions.Grant(GrantPermissionInput{UserID: user.ID, ProjectID: project.ID, Level: models.PermissionAdmin})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	found, err := suite.permissions.GetUserPermission(user.ID, project.ID)
	suite.Require().NoError(err)
	suite.Equal(permission.ID, found.ID)
	suite.Equal(models.PermissionRead, found.PermissionLevel)
}

func (suite *ServiceTestSuite) TestGrant_Rejects() {
	user := suite.createUser("fay@example.com")
	project := suite.createProject("Roof")

	_, err := suite.permissions.Grant(GrantPermissionInput{UserID: user.ID, ProjectID: project.ID, Level: "OWNER"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.permissions.Grant(GrantPermissionInput{UserID: uuid.New(), ProjectID: project.ID})
	suite.True(apperrors.IsNotFound(err), "got %v", err)

	_, err = suite.permissions.Grant(GrantPermissionInput{ProjectID: project.ID})
	suite.True(apperrors.IsValidation(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestUpdateLevelAndRevoke() {
	user := suite.createUser("gus@example.com")
	project := suite.createProject("Trunk")

	permission, err := suite.permissions.Grant(GrantPermissionInput{UserID: user.ID, ProjectID: project.ID})
	suite.Require().NoError(err)

	updated, err := suite.permissions.UpdateLevel(permission.ID, models.PermissionManage)
	suite.Require().NoError(err)
	suite.Equal(models.PermissionManage, updated.PermissionLevel)

	_, err = suite.permissions.UpdateLevel(permission.ID, "ROOT")
	suite.True(apperrors.IsValidation(err))

	permissions, total, err := suite.permissions.ListForProject(project.ID, repository.ListOptions{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(models.PermissionManage, permissions[0].PermissionLevel)
	suite.Require().NotNil(permissions[0].User)

	suite.Require().NoError(suite.permissions.Revoke(permission.ID))
	_, err = suite.permissions.GetPermission(permission.ID)
	suite.True(apperrors.IsNotFound(err))
	suite.True(apperrors.IsNotFound(suite.permissions.Revoke(permission.ID)))
}
