package repository

import (
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

var documentSortColumns = sortColumns{
	"name":        "documents.name",
	"uploaded_at": "documents.uploaded_at",
}

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a new document. A missing name is taken from the file
// reference here and nowhere else.
func (r *GormDocumentRepository) Create(document *models.Document) error {
	document.DeriveName()
	if document.UploadedAt.IsZero() {
		document.UploadedAt = now()
	}
	return insert(r.db, document, &document.Base, "document", "")
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var document models.Document
	if err := first(r.db, &document, "document", id); err != nil {
		return nil, err
	}
	return &document, nil
}

// ListByPhase lists the documents of a phase, oldest upload first
func (r *GormDocumentRepository) ListByPhase(phaseID uuid.UUID, opts ListOptions) ([]models.Document, int64, error) {
	var documents []models.Document
	query := r.db.Model(&models.Document{}).Where("documents.phase_id = ?", phaseID)

	total, err := list(query, &documents, opts, documentSortColumns, "documents.uploaded_at, documents.id")
	if err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

// Update updates a document
func (r *GormDocumentRepository) Update(document *models.Document) error {
	return update(r.db, document, &document.Base, "document", "")
}

// Delete deletes a document row
func (r *GormDocumentRepository) Delete(id uuid.UUID) error {
	return deleteByID(r.db, &models.Document{}, "document", id)
}
