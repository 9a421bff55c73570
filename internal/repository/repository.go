package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
)

// SortField orders a listing by one whitelisted field.
type SortField struct {
	Field string
	Desc  bool
}

// ListOptions holds pagination and ordering for list queries.
// An empty Sort means the entity's default ordering.
type ListOptions struct {
	Page     int
	PageSize int
	Sort     []SortField
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	List(opts ListOptions) ([]models.User, int64, error)
	Update(user *models.User) error

	// Delete removes a user, clearing every reference to them
	Delete(id uuid.UUID) error

	// ListTeams lists the teams a user belongs to
	ListTeams(userID uuid.UUID) ([]models.Team, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(team *models.Team) error
	FindByID(id uuid.UUID) (*models.Team, error)
	List(opts ListOptions) ([]models.Team, int64, error)
	Update(team *models.Team) error

	// Delete removes a team and its memberships and detaches its projects
	Delete(id uuid.UUID) error

	AddMember(member *models.TeamMember) error
	RemoveMember(teamID, userID uuid.UUID) error
	FindMember(teamID, userID uuid.UUID) (*models.TeamMember, error)
	ListMembers(teamID uuid.UUID) ([]models.User, error)
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(client *models.Client) error
	FindByID(id uuid.UUID) (*models.Client, error)
	List(opts ListOptions) ([]models.Client, int64, error)
	Update(client *models.Client) error
	Delete(id uuid.UUID) error

	LinkProject(link *models.ProjectClient) error
	UnlinkProject(projectID, clientID uuid.UUID) error

	// ListProjects lists the projects delivered to a client
	ListProjects(clientID uuid.UUID) ([]models.Project, error)

	// ListByProject lists the clients of a project
	ListByProject(projectID uuid.UUID) ([]models.Client, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Status            *models.ProjectStatus
	TeamID            *uuid.UUID
	ResponsibleUserID *uuid.UUID
	ListOptions
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uuid.UUID, preload ...string) (*models.Project, error)

	List(filter ProjectFilter) ([]models.Project, int64, error)
	Update(project *models.Project) error

	// Delete removes a project with its phases, their tasks and documents,
	// its history, permissions and client links. It returns the storage
	// references of the removed documents.
	Delete(id uuid.UUID) ([]string, error)
}

// PermissionRepository defines the interface for project permission data access
type PermissionRepository interface {
	// Create inserts a permission; a second row for the same
	// (user, project) pair is a constraint violation
	Create(permission *models.ProjectPermission) error

	FindByID(id uuid.UUID) (*models.ProjectPermission, error)
	Find(userID, projectID uuid.UUID) (*models.ProjectPermission, error)
	ListByProject(projectID uuid.UUID, opts ListOptions) ([]models.ProjectPermission, int64, error)
	ListByUser(userID uuid.UUID) ([]models.ProjectPermission, error)
	Update(permission *models.ProjectPermission) error
	Delete(id uuid.UUID) error
}

// PhaseTemplateRepository defines the interface for phase template data access
type PhaseTemplateRepository interface {
	Create(template *models.PhaseTemplate) error
	FindByID(id uuid.UUID) (*models.PhaseTemplate, error)
	FindByName(name string) (*models.PhaseTemplate, error)
	List(opts ListOptions) ([]models.PhaseTemplate, int64, error)
	Update(template *models.PhaseTemplate) error

	// Delete removes a template; phases created from it keep their data
	Delete(id uuid.UUID) error
}

// PhaseRepository defines the interface for phase data access
type PhaseRepository interface {
	// Create inserts a phase; a second phase with the same level in the
	// same project is a constraint violation
	Create(phase *models.Phase) error

	FindByID(id uuid.UUID, preload ...string) (*models.Phase, error)

	// ListByProject lists the phases of a project, by level by default
	ListByProject(projectID uuid.UUID, opts ListOptions) ([]models.Phase, int64, error)

	Update(phase *models.Phase) error

	// Delete removes a phase with its tasks, documents and phase history
	// and returns the storage references of the removed documents
	Delete(id uuid.UUID) ([]string, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID      *uuid.UUID
	PhaseID        *uuid.UUID
	AssignedUserID *uuid.UUID
	Status         *models.TaskStatus
	DueBefore      *time.Time
	ListOptions
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uuid.UUID, preload ...string) (*models.Task, error)

	// List retrieves tasks ordered by project, phase level and creation
	// time unless the filter asks otherwise
	List(filter TaskFilter) ([]models.Task, int64, error)

	Update(task *models.Task) error

	// Delete removes a task; its history entries survive
	Delete(id uuid.UUID) error
}

// HistoryFilter holds filtering options for listing history logs
type HistoryFilter struct {
	ProjectID *uuid.UUID
	PhaseID   *uuid.UUID
	TaskID    *uuid.UUID
	UserID    *uuid.UUID
	Status    *models.LogStatus
	ListOptions
}

// HistoryLogRepository defines the interface for history log data access
type HistoryLogRepository interface {
	Create(entry *models.HistoryLog) error
	FindByID(id uuid.UUID) (*models.HistoryLog, error)

	// List retrieves history entries, newest first by default
	List(filter HistoryFilter) ([]models.HistoryLog, int64, error)

	Delete(id uuid.UUID) error
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// Create inserts a document, deriving its name from the file
	// reference when no name was given
	Create(document *models.Document) error

	FindByID(id uuid.UUID) (*models.Document, error)
	ListByPhase(phaseID uuid.UUID, opts ListOptions) ([]models.Document, int64, error)

	// Update stores the document as given; the name is never re-derived
	Update(document *models.Document) error

	Delete(id uuid.UUID) error
}
