package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/ids"
	"equitie-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDocumentNotFound = errors.New("Document not found")
	ErrFileRequired     = errors.New("file is required")
)

// Storage is the part of the object store the documents flow needs.
type Storage interface {
	Upload(ctx context.Context, bucket, path, contentType string, r io.Reader) error
	PublicURL(bucket, path string) string
	CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error)
	Remove(ctx context.Context, bucket, path string) error
}

// Input is the metadata sent alongside an uploaded file.
type Input struct {
	DocumentID    string  `json:"document_id" form:"document_id"`
	DocumentType  string  `json:"document_type" form:"document_type"`
	ProjectID     string  `json:"project_id" form:"project_id"`
	EntityID      string  `json:"entity_id" form:"entity_id"`
	TransactionID string  `json:"transaction_id" form:"transaction_id"`
	Notes         *string `json:"notes" form:"notes"`
}

func (in Input) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Required("document_type", in.DocumentType, "Document type is required")
	if in.DocumentType != "" && !validation.OneOf(strings.ToUpper(in.DocumentType), domain.DocumentTypes) {
		errs.Add("document_type", "Invalid document type")
	}
	for field, s := range map[string]string{"project_id": in.ProjectID, "entity_id": in.EntityID, "transaction_id": in.TransactionID} {
		if s == "" {
			continue
		}
		if _, err := uuid.Parse(s); err != nil {
			errs.Add(field, "Invalid reference")
		}
	}
	return errs
}

// File is an uploaded file.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// UploadTicket is a signed URL the browser can PUT the file to, plus where it will be served.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Path      string `json:"path"`
}

type Service struct {
	DB      *gorm.DB
	Storage Storage
	Bucket  string
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// objectName is the stored name of an upload: <unix-ms><.ext>.
func (s *Service) objectName(fileName string) string {
	return fmt.Sprintf("%d%s", s.now().UnixMilli(), strings.ToLower(filepath.Ext(fileName)))
}

func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	var out []domain.Document
	err := s.DB.WithContext(ctx).
		Preload("Project").
		Preload("Entity").
		Preload("Transaction").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Error().Err(err).Msg("list documents")
		return nil, err
	}
	return out, nil
}

// Upload stores the file in the documents bucket and upserts its metadata row
// keyed on document_id. The document is named after the uploaded file. When the
// row cannot be saved the stored object is removed again.
func (s *Service) Upload(ctx context.Context, in Input, f File) (*domain.Document, error) {
	if f.Body == nil || f.Name == "" {
		return nil, ErrFileRequired
	}
	object := s.objectName(f.Name)
	if err := s.Storage.Upload(ctx, s.Bucket, object, f.ContentType, f.Body); err != nil {
		log.Error().Err(err).Str("bucket", s.Bucket).Str("object", object).Msg("upload document")
		return nil, err
	}

	row := domain.Document{
		DocumentID:    ids.OrNew(in.DocumentID, ids.Document),
		DocumentName:  f.Name,
		DocumentType:  strings.ToUpper(in.DocumentType),
		DocumentURL:   s.Storage.PublicURL(s.Bucket, object),
		ProjectID:     optionalUUID(in.ProjectID),
		EntityID:      optionalUUID(in.EntityID),
		TransactionID: optionalUUID(in.TransactionID),
		Notes:         in.Notes,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"document_name", "document_type", "document_url", "project_id",
			"entity_id", "transaction_id", "notes", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		log.Error().Err(err).Str("document_id", row.DocumentID).Msg("save document")
		if rmErr := s.Storage.Remove(ctx, s.Bucket, object); rmErr != nil {
			log.Warn().Err(rmErr).Str("object", object).Msg("remove orphaned upload")
		}
		return nil, err
	}
	return s.Get(ctx, row.DocumentID)
}

// SignedUpload reserves an object name for fileName and returns a signed upload URL for it.
func (s *Service) SignedUpload(ctx context.Context, fileName string) (*UploadTicket, error) {
	object := s.objectName(fileName)
	u, err := s.Storage.CreateSignedUploadURL(ctx, s.Bucket, object)
	if err != nil {
		return nil, err
	}
	return &UploadTicket{UploadURL: u, PublicURL: s.Storage.PublicURL(s.Bucket, object), Path: object}, nil
}

func (s *Service) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	var d domain.Document
	err := s.DB.WithContext(ctx).
		Preload("Project").
		Preload("Entity").
		Preload("Transaction").
		Where("document_id = ?", documentID).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes the metadata row. The stored object is left in the bucket.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	res := s.DB.WithContext(ctx).Where("document_id = ?", documentID).Delete(&domain.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func optionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
