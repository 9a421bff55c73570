package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yukikurage/apqp-tracker/internal/errors"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
	"gorm.io/datatypes"
)

// HistoryService records and lists what happened on projects.
type HistoryService struct {
	history  repository.HistoryLogRepository
	projects repository.ProjectRepository
	phases   repository.PhaseRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(
	history repository.HistoryLogRepository,
	projects repository.ProjectRepository,
	phases repository.PhaseRepository,
	tasks repository.TaskRepository,
	users repository.UserRepository,
) *HistoryService {
	return &HistoryService{
		history:  history,
		projects: projects,
		phases:   phases,
		tasks:    tasks,
		users:    users,
	}
}

// RecordInput represents one history entry. Status defaults to INFO and
// Timestamp to the time of recording. Phase and task must belong to the
// project; the task may sit in a different phase than the entry.
type RecordInput struct {
	ProjectID uuid.UUID        `json:"project_id" validate:"required"`
	PhaseID   *uuid.UUID       `json:"phase_id"`
	TaskID    *uuid.UUID       `json:"task_id"`
	UserID    *uuid.UUID       `json:"user_id"`
	Summary   string           `json:"summary" validate:"required"`
	Status    models.LogStatus `json:"status" validate:"omitempty,enum"`
	Timestamp time.Time        `json:"timestamp"`
	Details   datatypes.JSON   `json:"details" validate:"omitempty,json"`
}

// ListHistoryInput represents filters for listing history
type ListHistoryInput struct {
	Status *models.LogStatus
	repository.ListOptions
}

func (s *HistoryService) Record(input RecordInput) (*models.HistoryLog, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(input.ProjectID); err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if input.PhaseID != nil {
		phase, err := s.phases.FindByID(*input.PhaseID)
		if err != nil {
			return nil, fmt.Errorf("failed to find phase: %w", err)
		}
		if phase.ProjectID != input.ProjectID {
			return nil, apperrors.Validation("phase belongs to another project", map[string]string{"phase_id": "project"})
		}
	}
	if input.TaskID != nil {
		task, err := s.tasks.FindByID(*input.TaskID, "Phase")
		if err != nil {
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		if task.Phase == nil || task.Phase.ProjectID != input.ProjectID {
			return nil, apperrors.Validation("task belongs to another project", map[string]string{"task_id": "project"})
		}
	}
	if input.UserID != nil {
		if _, err := s.users.FindByID(*input.UserID); err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	}

	entry := &models.HistoryLog{
		ProjectID: input.ProjectID,
		PhaseID:   input.PhaseID,
		TaskID:    input.TaskID,
		UserID:    input.UserID,
		Summary:   input.Summary,
		Status:    input.Status,
		Timestamp: input.Timestamp,
		Details:   input.Details,
	}
	if err := s.history.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}
	return entry, nil
}

func (s *HistoryService) GetEntry(id uuid.UUID) (*models.HistoryLog, error) {
	entry, err := s.history.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find history entry: %w", err)
	}
	return entry, nil
}

// ListForProject lists the history of a project, newest first.
func (s *HistoryService) ListForProject(projectID uuid.UUID, input ListHistoryInput) ([]models.HistoryLog, int64, error) {
	return s.list(repository.HistoryFilter{ProjectID: &projectID}, input)
}

func (s *HistoryService) ListForPhase(phaseID uuid.UUID, input ListHistoryInput) ([]models.HistoryLog, int64, error) {
	return s.list(repository.HistoryFilter{PhaseID: &phaseID}, input)
}

func (s *HistoryService) ListForTask(taskID uuid.UUID, input ListHistoryInput) ([]models.HistoryLog, int64, error) {
	return s.list(repository.HistoryFilter{TaskID: &taskID}, input)
}

func (s *HistoryService) ListForUser(userID uuid.UUID, input ListHistoryInput) ([]models.HistoryLog, int64, error) {
	return s.list(repository.HistoryFilter{UserID: &userID}, input)
}

func (s *HistoryService) list(filter repository.HistoryFilter, input ListHistoryInput) ([]models.HistoryLog, int64, error) {
	if input.Status != nil {
		if err := validation.Enum("status", *input.Status); err != nil {
			return nil, 0, err
		}
	}

	filter.Status = input.Status
	filter.ListOptions = input.ListOptions

	entries, total, err := s.history.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, total, nil
}

func (s *HistoryService) DeleteEntry(id uuid.UUID) error {
	if err := s.history.Delete(id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}
