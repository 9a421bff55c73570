package services

import (
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
)

func (suite *ServiceTestSuite) TestClientProjects() {
	client, err := suite.clients.CreateClient(CreateClientInput{Name: "Initech", Email: "buyer@initech.example"})
	suite.Require().NoError(err)
	project := suite.createProject("Console")

	suite.Require().NoError(suite.clients.LinkProject(client.ID, project.ID))
	suite.True(apperrors.IsConstraintViolation(suite.clients.LinkProject(client.ID, project.ID)))

	projects, err := suite.clients.ListProjects(client.ID)
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Equal(project.ID, projects[0].ID)

	clients, err := suite.clients.ListProjectClients(project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(clients, 1)

	suite.Require().NoError(suite.clients.UnlinkProject(client.ID, project.ID))
	projects, err = suite.clients.ListProjects(client.ID)
	suite.Require().NoError(err)
	suite.Empty(projects)
}

func (suite *ServiceTestSuite) TestClient_UpdateAndDuplicateEmail() {
	client, err := suite.clients.CreateClient(CreateClientInput{Name: "Umbrella", Email: "sq@umbrella.example"})
	suite.Require().NoError(err)
	_, err = suite.clients.CreateClient(CreateClientInput{Name: "Other", Email: "other@umbrella.example"})
	suite.Require().NoError(err)

	taken := "other@umbrella.example"
	_, err = suite.clients.UpdateClient(client.ID, UpdateClientInput{Email: &taken})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	phone := "+1 555 0100"
	updated, err := suite.clients.UpdateClient(client.ID, UpdateClientInput{Phone: &phone})
	suite.Require().NoError(err)
	suite.Equal(phone, updated.Phone)

	suite.Require().NoError(suite.clients.DeleteClient(client.ID))
	_, err = suite.clients.GetClient(client.ID)
	suite.True(apperrors.IsNotFound(err))
}
