package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/datatypes"
)

func (suite *ServiceTestSuite) TestRecord_Defaults() {
	project := suite.createProject("Wiper")

	entry, err := suite.history.Record(RecordInput{
		ProjectID: project.ID,
		Summary:   "Kick-off held",
		Details:   datatypes.JSON(`{"attendees":4}`),
	})
	suite.Require().NoError(err)
	suite.Equal(models.LogStatusInfo, entry.Status)
	suite.False(entry.Timestamp.IsZero())

	found, err := suite.history.GetEntry(entry.ID)
	suite.Require().NoError(err)
	suite.JSONEq(`{"attendees":4}`, string(found.Details))
}

func (suite *ServiceTestSuite) TestRecord_Rejects() {
	project := suite.createProject("Horn")

	_, err := suite.history.Record(RecordInput{ProjectID: uuid.New(), Summary: "x"})
	suite.True(apperrors.IsNotFound(err), "got %v", err)

	_, err = suite.history.Record(RecordInput{ProjectID: project.ID, Summary: "x", Status: "DEBUG"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.history.Record(RecordInput{ProjectID: project.ID})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	missing := uuid.New()
	_, err = suite.history.Record(RecordInput{ProjectID: project.ID, Summary: "x", TaskID: &missing})
	suite.True(apperrors.IsNotFound(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestRecord_ReferencesStayInProject() {
	ctx := context.Background()
	axle := suite.createProject("Axle")
	wheel := suite.createProject("Wheel")
	design := suite.createPhase(axle, 1)
	verify := suite.createPhase(axle, 2)
	wheelPhase := suite.createPhase(wheel, 1)

	task, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: design.ID, Name: "DFMEA"})
	suite.Require().NoError(err)

	_, err = suite.history.Record(RecordInput{ProjectID: wheel.ID, PhaseID: &design.ID, Summary: "x"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.history.Record(RecordInput{ProjectID: wheel.ID, TaskID: &task.ID, Summary: "x"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.history.Record(RecordInput{ProjectID: wheel.ID, PhaseID: &wheelPhase.ID, TaskID: &task.ID, Summary: "x"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	// A later phase of the same project may mention an earlier task.
	handover, err := suite.history.Record(RecordInput{ProjectID: axle.ID, PhaseID: &verify.ID, TaskID: &task.ID, Summary: "handover"})
	suite.Require().NoError(err)
	suite.Equal(task.ID, *handover.TaskID)

	kept, err := suite.history.Record(RecordInput{ProjectID: wheel.ID, PhaseID: &wheelPhase.ID, Summary: "kick-off"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.projects.DeleteProject(ctx, axle.ID))

	found, err := suite.history.GetEntry(kept.ID)
	suite.Require().NoError(err)
	suite.Equal(wheel.ID, found.ProjectID)
}

func (suite *ServiceTestSuite) TestHistory_NewestFirstWithFilters() {
	project := suite.createProject("Mount")
	phase := suite.createPhase(project, 1)
	user := suite.createUser("auditor@example.com")
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

	for i, in := range []RecordInput{
		{Summary: "first", Timestamp: base},
		{Summary: "third", Timestamp: base.Add(2 * time.Hour), Status: models.LogStatusAlert, UserID: &user.ID},
		{Summary: "second", Timestamp: base.Add(time.Hour), PhaseID: &phase.ID},
	} {
		in.ProjectID = project.ID
		_, err := suite.history.Record(in)
		suite.Require().NoError(err, "entry %d", i)
	}

	entries, total, err := suite.history.ListForProject(project.ID, ListHistoryInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Equal([]string{"third", "second", "first"}, []string{entries[0].Summary, entries[1].Summary, entries[2].Summary})

	alert := models.LogStatusAlert
	entries, total, err = suite.history.ListForProject(project.ID, ListHistoryInput{Status: &alert})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("third", entries[0].Summary)

	entries, _, err = suite.history.ListForPhase(phase.ID, ListHistoryInput{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("second", entries[0].Summary)

	entries, _, err = suite.history.ListForUser(user.ID, ListHistoryInput{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	suite.Require().NoError(suite.history.DeleteEntry(entries[0].ID))
	_, total, err = suite.history.ListForProject(project.ID, ListHistoryInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
}
