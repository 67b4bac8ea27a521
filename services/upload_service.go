package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilchouksey/campus-bridge/model"
	"github.com/sahilchouksey/campus-bridge/services/spaces"
	"github.com/sahilchouksey/campus-bridge/utils/pdfcheck"
	"gorm.io/gorm"
)

// UploadService stores collaboration attachments in Spaces and hands
// back the {name,url} pair the message log consumes. Binary storage
// itself lives outside this service's data model.
type UploadService struct {
	db      *gorm.DB
	collabs *CollaborationService
	spaces  *spaces.Client // nil disables uploads
}

// NewUploadService creates a new upload service
func NewUploadService(db *gorm.DB, collabs *CollaborationService, spacesClient *spaces.Client) *UploadService {
	return &UploadService{
		db:      db,
		collabs: collabs,
		spaces:  spacesClient,
	}
}

// Enabled reports whether a Spaces backend is configured
func (s *UploadService) Enabled() bool {
	return s.spaces != nil
}

// Upload validates and stores one file under the collaboration's prefix
// and returns the attachment link
func (s *UploadService) Upload(ctx context.Context, actor *Actor, collabID uint, file *multipart.FileHeader) (*model.Attachment, error) {
	if _, err := s.collabs.load(ctx, s.db, actor, collabID); err != nil {
		return nil, err
	}

	// PDFs get a structural check before they are accepted
	if strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		result, err := pdfcheck.ValidateFile(file, pdfcheck.AttachmentLimits)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, result.Error)
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("collaborations/%d/%s%s", collabID, uuid.New().String(), filepath.Ext(file.Filename))

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := s.spaces.UploadFile(ctx, key, src, contentType)
	if err != nil {
		return nil, err
	}

	return &model.Attachment{
		Name: file.Filename,
		URL:  url,
	}, nil
}
