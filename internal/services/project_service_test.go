package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
)

func (suite *ServiceTestSuite) TestCreateProject_Defaults() {
	owner := suite.createUser("owner@example.com")

	project, err := suite.projects.CreateProject(CreateProjectInput{Name: "Door Module", ResponsibleUserID: &owner.ID})
	suite.Require().NoError(err)
	suite.Equal(models.ProjectStatusPlanning, project.Status)

	found, err := suite.projects.GetProject(project.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(found.ResponsibleUser)
	suite.Equal("owner@example.com", found.ResponsibleUser.Email)
}

func (suite *ServiceTestSuite) TestCreateProject_Rejects() {
	_, err := suite.projects.CreateProject(CreateProjectInput{Name: "X", Status: "ARCHIVED"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.projects.CreateProject(CreateProjectInput{Name: strings.Repeat("x", 256)})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	missing := uuid.New()
	_, err = suite.projects.CreateProject(CreateProjectInput{Name: "X", TeamID: &missing})
	suite.True(apperrors.IsNotFound(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestListProjects_Filters() {
	suite.createProject("Beta")
	active, err := suite.projects.CreateProject(CreateProjectInput{Name: "Alpha", Status: models.ProjectStatusActive})
	suite.Require().NoError(err)
	suite.createProject("Gamma")

	projects, total, err := suite.projects.ListProjects(ListProjectsInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Equal([]string{"Alpha", "Beta", "Gamma"}, []string{projects[0].Name, projects[1].Name, projects[2].Name})

	status := models.ProjectStatusActive
	projects, total, err = suite.projects.ListProjects(ListProjectsInput{Status: &status})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(active.ID, projects[0].ID)

	bad := models.ProjectStatus("DONE")
	_, _, err = suite.projects.ListProjects(ListProjectsInput{Status: &bad})
	suite.True(apperrors.IsValidation(err))

	_, _, err = suite.projects.ListProjects(ListProjectsInput{ListOptions: repository.ListOptions{
		Sort: []repository.SortField{{Field: "budget"}},
	}})
	suite.True(apperrors.IsValidation(err))
}

func (suite *ServiceTestSuite) TestUpdateProject_ClearsReferences() {
	owner := suite.createUser("lead@example.com")
	project, err := suite.projects.CreateProject(CreateProjectInput{Name: "Seat", ResponsibleUserID: &owner.ID})
	suite.Require().NoError(err)

	status := models.ProjectStatusOnHold
	updated, err := suite.projects.UpdateProject(project.ID, UpdateProjectInput{Status: &status, ClearResponsibleUser: true})
	suite.Require().NoError(err)
	suite.Equal(models.ProjectStatusOnHold, updated.Status)
	suite.Nil(updated.ResponsibleUserID)

	found, err := suite.projects.GetProject(project.ID)
	suite.Require().NoError(err)
	suite.Nil(found.ResponsibleUserID)
	suite.Equal(models.ProjectStatusOnHold, found.Status)
}

func (suite *ServiceTestSuite) TestDeleteProject_RemovesEverything() {
	ctx := context.Background()
	project := suite.createProject("Tailgate")
	phase := suite.createPhase(project, 1)

	task, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "PFMEA"})
	suite.Require().NoError(err)
	doc, err := suite.documents.Upload(ctx, UploadDocumentInput{
		PhaseID:  phase.ID,
		Filename: "pfmea.xlsx",
		Body:     strings.NewReader("rows"),
	})
	suite.Require().NoError(err)
	_, err = suite.history.Record(RecordInput{ProjectID: project.ID, TaskID: &task.ID, Summary: "created"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.projects.DeleteProject(ctx, project.ID))

	_, err = suite.phases.GetPhase(phase.ID)
	suite.True(apperrors.IsNotFound(err))
	_, err = suite.tasks.GetTask(task.ID)
	suite.True(apperrors.IsNotFound(err))
	_, err = suite.documents.GetDocument(doc.ID)
	suite.True(apperrors.IsNotFound(err))
	suite.False(suite.store.has(doc.File))

	entries, total, err := suite.history.ListForProject(project.ID, ListHistoryInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(entries)

	suite.True(apperrors.IsNotFound(suite.projects.DeleteProject(ctx, project.ID)))
}
