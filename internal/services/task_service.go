package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// TaskService handles task business logic
type TaskService struct {
	tasks    repository.TaskRepository
	phases   repository.PhaseRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, phases repository.PhaseRepository, projects repository.ProjectRepository, users repository.UserRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		phases:   phases,
		projects: projects,
		users:    users,
		log:      logger.For("task_service"),
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	PhaseID        uuid.UUID         `json:"phase_id" validate:"required"`
	Name           string            `json:"name" validate:"required,max=255"`
	Description    string            `json:"description"`
	Status         models.TaskStatus `json:"status" validate:"omitempty,enum"`
	DueDate        *time.Time        `json:"due_date"`
	AssignedUserID *uuid.UUID        `json:"assigned_user_id"`
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Name           *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status" validate:"omitempty,enum"`
	DueDate        *time.Time         `json:"due_date"`
	ClearDueDate   bool               `json:"clear_due_date"`
	AssignedUserID *uuid.UUID         `json:"assigned_user_id"`
	ClearAssignee  bool               `json:"clear_assignee"`
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssignedUserID *uuid.UUID
	Status         *models.TaskStatus
	DueBefore      *time.Time
	repository.ListOptions
}

// CreateTask creates a new task in a phase
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.phases.FindByID(input.PhaseID); err != nil {
		return nil, fmt.Errorf("failed to find phase: %w", err)
	}
	if err := s.checkAssignee(input.AssignedUserID); err != nil {
		return nil, err
	}

	task := &models.Task{
		PhaseID:        input.PhaseID,
		Name:           input.Name,
		Description:    input.Description,
		Status:         input.Status,
		DueDate:        input.DueDate,
		AssignedUserID: input.AssignedUserID,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with its phase and assignee
func (s *TaskService) GetTask(id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.FindByID(id, "Phase", "AssignedUser")
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListForPhase lists the tasks of a phase in creation order
func (s *TaskService) ListForPhase(phaseID uuid.UUID, input ListTasksInput) ([]models.Task, int64, error) {
	if _, err := s.phases.FindByID(phaseID); err != nil {
		return nil, 0, fmt.Errorf("failed to find phase: %w", err)
	}
	return s.list(repository.TaskFilter{PhaseID: &phaseID}, input)
}

// ListForProject lists the tasks of a project ordered by phase level,
// then creation time
func (s *TaskService) ListForProject(projectID uuid.UUID, input ListTasksInput) ([]models.Task, int64, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, 0, fmt.Errorf("failed to find project: %w", err)
	}
	return s.list(repository.TaskFilter{ProjectID: &projectID}, input)
}

func (s *TaskService) list(filter repository.TaskFilter, input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil {
		if err := validation.Enum("status", *input.Status); err != nil {
			return nil, 0, err
		}
	}

	filter.AssignedUserID = input.AssignedUserID
	filter.Status = input.Status
	filter.DueBefore = input.DueBefore
	filter.ListOptions = input.ListOptions

	tasks, total, err := s.tasks.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTask updates an existing task
func (s *TaskService) UpdateTask(id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		task.Name = *input.Name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearAssignee {
		task.AssignedUserID = nil
	} else if input.AssignedUserID != nil {
		if err := s.checkAssignee(input.AssignedUserID); err != nil {
			return nil, err
		}
		task.AssignedUserID = input.AssignedUserID
	}

	if err := s.tasks.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task. History entries about it are kept.
func (s *TaskService) DeleteTask(id uuid.UUID) error {
	if err := s.tasks.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.Info().Str("task_id", id.String()).Msg("Task deleted")
	return nil
}

func (s *TaskService) checkAssignee(userID *uuid.UUID) error {
	if userID == nil {
		return nil
	}
	if _, err := s.users.FindByID(*userID); err != nil {
		return fmt.Errorf("failed to find assignee: %w", err)
	}
	return nil
}
