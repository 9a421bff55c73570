package services

import (
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
)

func (suite *ServiceTestSuite) TestListForProject_OrderedByPhaseThenCreation() {
	project := suite.createProject("Console")
	later := suite.createPhase(project, 2)
	first := suite.createPhase(project, 1)

	for _, in := range []CreateTaskInput{
		{PhaseID: later.ID, Name: "run at rate"},
		{PhaseID: first.ID, Name: "voice of customer"},
		{PhaseID: first.ID, Name: "design goals"},
	} {
		_, err := suite.tasks.CreateTask(in)
		suite.Require().NoError(err)
		// Creation timestamps must differ for the ordering to be observable.
		time.Sleep(2 * time.Millisecond)
	}

	tasks, total, err := suite.tasks.ListForProject(project.ID, ListTasksInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Equal(
		[]string{"voice of customer", "design goals", "run at rate"},
		[]string{tasks[0].Name, tasks[1].Name, tasks[2].Name},
	)

	tasks, total, err = suite.tasks.ListForPhase(later.ID, ListTasksInput{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("run at rate", tasks[0].Name)
}

func (suite *ServiceTestSuite) TestCreateTask_Rejects() {
	phase := suite.createPhase(suite.createProject("Pedal"), 1)

	_, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "x", Status: "WAITING"})
	suite.True(apperrors.IsValidation(err), "got %v", err)

	_, err = suite.tasks.CreateTask(CreateTaskInput{PhaseID: uuid.New(), Name: "x"})
	suite.True(apperrors.IsNotFound(err), "got %v", err)

	missing := uuid.New()
	_, err = suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "x", AssignedUserID: &missing})
	suite.True(apperrors.IsNotFound(err), "got %v", err)
}

func (suite *ServiceTestSuite) TestUpdateTask_ClearsOptionalFields() {
	user := suite.createUser("tech@example.com")
	phase := suite.createPhase(suite.createProject("Sensor"), 1)
	due := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)

	task, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "MSA", DueDate: &due, AssignedUserID: &user.ID})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusPending, task.Status)

	status := models.TaskStatusCompleted
	_, err = suite.tasks.UpdateTask(task.ID, UpdateTaskInput{Status: &status, ClearDueDate: true, ClearAssignee: true})
	suite.Require().NoError(err)

	found, err := suite.tasks.GetTask(task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, found.Status)
	suite.Nil(found.DueDate)
	suite.Nil(found.AssignedUserID)
	suite.Require().NotNil(found.Phase)
	suite.Equal(phase.ID, found.Phase.ID)

	suite.Require().NoError(suite.tasks.DeleteTask(task.ID))
	suite.True(apperrors.IsNotFound(suite.tasks.DeleteTask(task.ID)))
}

func (suite *ServiceTestSuite) TestListTasks_DueBefore() {
	phase := suite.createPhase(suite.createProject("Lamp"), 1)
	soon := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	later := time.Date(2027, 1, 20, 0, 0, 0, 0, time.UTC)

	_, err := suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "soon", DueDate: &soon})
	suite.Require().NoError(err)
	_, err = suite.tasks.CreateTask(CreateTaskInput{PhaseID: phase.ID, Name: "later", DueDate: &later})
	suite.Require().NoError(err)

	cutoff := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	tasks, total, err := suite.tasks.ListForPhase(phase.ID, ListTasksInput{DueBefore: &cutoff})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("soon", tasks[0].Name)
}
