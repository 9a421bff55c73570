package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
)

func (suite *ServiceTestSuite) TestCreatePhase_LevelUniquePerProject() {
	project := suite.createProject("Manifold")
	suite.createPhase(project, 2)
	suite.createPhase(project, 1)

	_, err := suite.phases.CreatePhase(CreatePhaseInput{ProjectID: project.ID, Level: 2})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	phases, total, err := suite.phases.ListForProject(project.ID, repository.ListOptions{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Equal(1, phases[0].Level)
	suite.Equal(2, phases[1].Level)
}

func (suite *ServiceTestSuite) TestCreatePhase_Rejects() {
	project := suite.createProject("Intake")

	_, err := suite.phases.CreatePhase(CreatePhaseInput{ProjectID: project.ID, Level: 0})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.phases.CreatePhase(CreatePhaseInput{ProjectID: project.ID, Level: 1, Status: "DONE"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.phases.CreatePhase(CreatePhaseInput{ProjectID: uuid.New(), Level: 1})
	suite.True(apperrors.IsNotFound(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestUpdatePhase() {
	project := suite.createProject("Exhaust")
	phase := suite.createPhase(project, 1)
	suite.createPhase(project, 2)

	status := models.PhaseStatusReview
	updated, err := suite.phases.UpdatePhase(phase.ID, UpdatePhaseInput{
		Status:            &status,
		RequiredDocuments: []string{"Control plan"},
	})
	suite.Require().NoError(err)
	suite.Equal(models.PhaseStatusReview, updated.Status)

	taken := 2
	_, err = suite.phases.UpdatePhase(phase.ID, UpdatePhaseInput{Level: &taken})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	found, err := suite.phases.GetPhase(phase.ID)
	suite.Require().NoError(err)
	suite.Equal(1, found.Level)
	suite.Equal([]string{"Control plan"}, []string(found.RequiredDocuments))
}

func (suite *ServiceTestSuite) TestDeletePhase_RemovesChildrenAndFiles() {
	ctx := context.Background()
	project := suite.createProject("Radiator")
	phase := suite.createPhase(project, 1)
	other := suite.createPhase(project, 2)

	doc, err := suite.documents.Upload(ctx, UploadDocumentInput{PhaseID: phase.ID, Filename: "flow.pdf", Body: strings.NewReader("pdf")})
	suite.Require().NoError(err)
	kept, err := suite.documents.Upload(ctx, UploadDocumentInput{PhaseID: other.ID, Filename: "plan.pdf", Body: strings.NewReader("pdf")})
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "Flow chart"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.phases.DeletePhase(ctx, phase.ID))

	suite.False(suite.store.has(doc.File))
	suite.True(suite.store.has(kept.File))

	tasks, total, err := suite.tasks.ListForProject(project.ID, ListTasksInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(tasks)
}
