package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// ClientService provides business logic for clients and the projects
// delivered to them.
type ClientService struct {
	clients  repository.ClientRepository
	projects repository.ProjectRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clients repository.ClientRepository, projects repository.ProjectRepository) *ClientService {
	return &ClientService{
		clients:  clients,
		projects: projects,
	}
}

type CreateClientInput struct {
	Name    string `json:"name" validate:"required,max=150"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address"`
}

type UpdateClientInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address"`
}

func (s *ClientService) CreateClient(input CreateClientInput) (*models.Client, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	client := &models.Client{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.clients.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *ClientService) GetClient(id uuid.UUID) (*models.Client, error) {
	client, err := s.clients.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

func (s *ClientService) ListClients(opts repository.ListOptions) ([]models.Client, int64, error) {
	clients, total, err := s.clients.List(opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

func (s *ClientService) UpdateClient(id uuid.UUID, input UpdateClientInput) (*models.Client, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}

	if err := s.clients.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *ClientService) DeleteClient(id uuid.UUID) error {
	if err := s.clients.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// LinkProject records that a project is delivered to a client.
func (s *ClientService) LinkProject(clientID, projectID uuid.UUID) error {
	if _, err := s.clients.FindByID(clientID); err != nil {
		return fmt.Errorf("failed to find client: %w", err)
	}
	if _, err := s.projects.FindByID(projectID); err != nil {
		return fmt.Errorf("failed to find project: %w", err)
	}

	link := &models.ProjectClient{ProjectID: projectID, ClientID: clientID}
	if err := s.clients.LinkProject(link); err != nil {
		return fmt.Errorf("failed to link project: %w", err)
	}
	return nil
}

func (s *ClientService) UnlinkProject(clientID, projectID uuid.UUID) error {
	if err := s.clients.UnlinkProject(projectID, clientID); err != nil {
		return fmt.Errorf("failed to unlink project: %w", err)
	}
	return nil
}

func (s *ClientService) ListProjects(clientID uuid.UUID) ([]models.Project, error) {
	if _, err := s.clients.FindByID(clientID); err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	projects, err := s.clients.ListProjects(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListProjectClients lists the clients of a project.
func (s *ClientService) ListProjectClients(projectID uuid.UUID) ([]models.Client, error) {
	if _, err := s.projects.FindByID(projectID); err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	clients, err := s.clients.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
