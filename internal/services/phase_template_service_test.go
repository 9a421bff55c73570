package services

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/database"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"gorm.io/datatypes"
)

func (suite *ServiceTestSuite) TestInstantiatePhase_FromTemplate() {
	level := 2
	template, err := suite.templates.CreateTemplate(CreatePhaseTemplateInput{
		Name:    "Product Design",
		Content: datatypes.JSON(`{"tasks":["DFMEA"],"documents":["DFMEA","Drawings"]}`),
		Level:   &level,
	})
	suite.Require().NoError(err)
	project := suite.createProject("Caliper")

	phase, err := suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{})
	suite.Require().NoError(err)
	suite.Equal(2, phase.Level)
	suite.Equal("Product Design", phase.Name)
	suite.Equal(models.PhaseStatusPending, phase.Status)
	suite.Equal([]string{"DFMEA", "Drawings"}, []string(phase.RequiredDocuments))
	suite.Require().NotNil(phase.TemplateID)
	suite.Equal(template.ID, *phase.TemplateID)

	found, err := suite.phases.GetPhase(phase.ID)
	suite.Require().NoError(err)
	suite.JSONEq(`{"tasks":["DFMEA"],"documents":["DFMEA","Drawings"]}`, string(found.Configuration))
	suite.Equal([]string{"DFMEA", "Drawings"}, []string(found.RequiredDocuments))

	// The level is taken now.
	_, err = suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	name := "Design, second loop"
	next := 3
	phase, err = suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{Name: &name, Level: &next})
	suite.Require().NoError(err)
	suite.Equal(name, phase.Name)
	suite.Equal(3, phase.Level)
}

func (suite *ServiceTestSuite) TestInstantiatePhase_ContentWithoutDocumentsList() {
	level := 1
	template, err := suite.templates.CreateTemplate(CreatePhaseTemplateInput{
		Name:    "Checklist only",
		Content: datatypes.JSON(`["Kick-off","Timing plan"]`),
		Level:   &level,
	})
	suite.Require().NoError(err)
	project := suite.createProject("Strut")

	phase, err := suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{})
	suite.Require().NoError(err)
	suite.Empty(phase.RequiredDocuments)

	found, err := suite.phases.GetPhase(phase.ID)
	suite.Require().NoError(err)
	suite.JSONEq(`["Kick-off","Timing plan"]`, string(found.Configuration))
	suite.Empty(found.RequiredDocuments)
}

func (suite *ServiceTestSuite) TestInstantiatePhase_NeedsLevel() {
	template, err := suite.templates.CreateTemplate(CreatePhaseTemplateInput{Name: "Unleveled"})
	suite.Require().NoError(err)
	project := suite.createProject("Rotor")

	_, err = suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.templates.InstantiatePhase(uuid.New(), project.ID, InstantiatePhaseInput{})
	suite.True(apperrors.IsNotFound(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestTemplates_SeededAndOrdered() {
	created, err := database.SeedPhaseTemplates(suite.db)
	suite.Require().NoError(err)
	suite.Equal(5, created)

	templates, total, err := suite.templates.ListTemplates(repository.ListOptions{
		Sort: []repository.SortField{{Field: "level"}},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(5), total)
	suite.Equal("Plan and Define Program", templates[0].Name)

	project := suite.createProject("Knuckle")
	for _, template := range templates {
		_, err := suite.templates.InstantiatePhase(template.ID, project.ID, InstantiatePhaseInput{})
		suite.Require().NoError(err)
	}

	phases, _, err := suite.phases.ListForProject(project.ID, repository.ListOptions{})
	suite.Require().NoError(err)
	suite.Require().Len(phases, 5)
	suite.Equal("Feedback, Assessment and Corrective Action", phases[4].Name)
}

func (suite *ServiceTestSuite) TestTemplate_UpdateAndDelete() {
	template, err := suite.templates.CreateTemplate(CreatePhaseTemplateInput{Name: "Validation"})
	suite.Require().NoError(err)

	_, err = suite.templates.CreateTemplate(CreatePhaseTemplateInput{Name: "Validation"})
	suite.True(apperrors.IsConstraintViolation(err), "got %v", err)

	_, err = suite.templates.CreateTemplate(CreatePhaseTemplateInput{Name: "Broken", Content: datatypes.JSON(`{"tasks":`)})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	level := 4
	updated, err := suite.templates.UpdateTemplate(template.ID, UpdatePhaseTemplateInput{Level: &level})
	suite.Require().NoError(err)
	suite.Equal(4, *updated.Level)

	phase, err := suite.templates.InstantiatePhase(template.ID, suite.createProject("Strut").ID, InstantiatePhaseInput{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.templates.DeleteTemplate(template.ID))

	found, err := suite.phases.GetPhase(phase.ID)
	suite.Require().NoError(err)
	suite.Nil(found.TemplateID)
	suite.Equal("Validation", found.Name)
}
