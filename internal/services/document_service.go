package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yukikurage/apqp-tracker/internal/logger"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"github.com/yukikurage/apqp-tracker/internal/repository"
	"github.com/yukikurage/apqp-tracker/internal/storage"
	"github.com/yukikurage/apqp-tracker/internal/validation"
)

// DocumentService keeps document metadata in the database and document
// bytes in file storage.
type DocumentService struct {
	documents repository.DocumentRepository
	phases    repository.PhaseRepository
	users     repository.UserRepository
	store     storage.FileStorage
	keyPrefix string
	log       zerolog.Logger
}

// NewDocumentService creates a new DocumentService. With a nil store,
// uploads fail with ErrStorageNotConfigured while metadata operations work.
func NewDocumentService(
	documents repository.DocumentRepository,
	phases repository.PhaseRepository,
	users repository.UserRepository,
	store storage.FileStorage,
	keyPrefix string,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		phases:    phases,
		users:     users,
		store:     store,
		keyPrefix: keyPrefix,
		log:       logger.For("document_service"),
	}
}

// UploadDocumentInput represents a file to store and attach to a phase.
// Name defaults to the file name.
type UploadDocumentInput struct {
	PhaseID      uuid.UUID  `json:"phase_id" validate:"required"`
	Filename     string     `json:"filename" validate:"required,max=255,basename"`
	ContentType  string     `json:"content_type"`
	Body         io.Reader  `json:"-" validate:"required"`
	Name         string     `json:"name" validate:"max=255"`
	Description  string     `json:"description"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id"`
}

// CreateDocumentInput attaches an already stored file to a phase.
// Name defaults to the last element of File.
type CreateDocumentInput struct {
	PhaseID      uuid.UUID  `json:"phase_id" validate:"required"`
	File         string     `json:"file" validate:"required,max=1024,basename"`
	Name         string     `json:"name" validate:"max=255"`
	Description  string     `json:"description"`
	UploadedByID *uuid.UUID `json:"uploaded_by_id"`
}

// UpdateDocumentInput changes document metadata. Changing File does not
// rename the document.
type UpdateDocumentInput struct {
	File        *string `json:"file" validate:"omitempty,min=1,max=1024,basename"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// Upload stores the bytes, then records the document. If recording fails
// the stored object is removed again.
func (s *DocumentService) Upload(ctx context.Context, input UploadDocumentInput) (*models.Document, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}
	if err := s.checkParents(input.PhaseID, input.UploadedByID); err != nil {
		return nil, err
	}

	key := storage.DocumentKey(s.keyPrefix, input.PhaseID, input.Filename)
	ref, err := s.store.Put(ctx, key, input.Body, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	document := &models.Document{
		PhaseID:      input.PhaseID,
		File:         ref,
		Name:         input.Name,
		Description:  input.Description,
		UploadedByID: input.UploadedByID,
	}
	if err := s.documents.Create(document); err != nil {
		purgeFiles(ctx, s.store, s.log, []string{ref})
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.log.Info().
		Str("document_id", document.ID.String()).
		Str("file", ref).
		Msg("Document uploaded")

	return document, nil
}

// CreateDocument records a document for a file that is already stored.
func (s *DocumentService) CreateDocument(input CreateDocumentInput) (*models.Document, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := s.checkParents(input.PhaseID, input.UploadedByID); err != nil {
		return nil, err
	}

	document := &models.Document{
		PhaseID:      input.PhaseID,
		File:         input.File,
		Name:         input.Name,
		Description:  input.Description,
		UploadedByID: input.UploadedByID,
	}
	if err := s.documents.Create(document); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}

func (s *DocumentService) GetDocument(id uuid.UUID) (*models.Document, error) {
	document, err := s.documents.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return document, nil
}

// ListForPhase lists the documents of a phase, oldest upload first.
func (s *DocumentService) ListForPhase(phaseID uuid.UUID, opts repository.ListOptions) ([]models.Document, int64, error) {
	if _, err := s.phases.FindByID(phaseID); err != nil {
		return nil, 0, fmt.Errorf("failed to find phase: %w", err)
	}

	documents, total, err := s.documents.ListByPhase(phaseID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, total, nil
}

func (s *DocumentService) UpdateDocument(id uuid.UUID, input UpdateDocumentInput) (*models.Document, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	document, err := s.documents.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	if input.File != nil {
		document.File = *input.File
	}
	if input.Name != nil {
		document.Name = *input.Name
	}
	if input.Description != nil {
		document.Description = *input.Description
	}

	if err := s.documents.Update(document); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	return document, nil
}

// DeleteDocument deletes the document row, then its stored file.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	document, err := s.documents.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to find document: %w", err)
	}

	if err := s.documents.Delete(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	purgeFiles(ctx, s.store, s.log, []string{document.File})
	return nil
}

// DownloadURL returns a time-limited link to the document's file.
func (s *DocumentService) DownloadURL(id uuid.UUID, expiry time.Duration) (string, error) {
	if s.store == nil {
		return "", ErrStorageNotConfigured
	}

	document, err := s.documents.FindByID(id)
	if err != nil {
		return "", fmt.Errorf("failed to find document: %w", err)
	}

	url, err := s.store.URL(document.File, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to sign document url: %w", err)
	}
	return url, nil
}

func (s *DocumentService) checkParents(phaseID uuid.UUID, uploadedByID *uuid.UUID) error {
	if _, err := s.phases.FindByID(phaseID); err != nil {
		return fmt.Errorf("failed to find phase: %w", err)
	}
	if uploadedByID != nil {
		if _, err := s.users.FindByID(*uploadedByID); err != nil {
			return fmt.Errorf("failed to find uploader: %w", err)
		}
	}
	return nil
}
