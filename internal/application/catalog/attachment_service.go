package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/logger"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxAttachmentSize caps uploaded file size at 10 MB
const MaxAttachmentSize = 10 << 20

// allowedExtensions is the whitelist of file extensions accepted for upload.
// Executables and scripts are rejected.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
	".csv":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".zip":  true,
}

// AttachmentService handles reusable quote email attachments. Every row
// references a stored file; file writes happen before the row insert and
// file deletes happen after the row is gone.
type AttachmentService struct {
	attachmentRepo catalog.AttachmentRepository
	fileStore      FileStore
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachmentRepo catalog.AttachmentRepository, fileStore FileStore) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		fileStore:      fileStore,
	}
}

// CreateAttachment stores the uploaded file and registers the attachment
func (s *AttachmentService) CreateAttachment(ctx context.Context, upload AttachmentUpload) (*AttachmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "create")
	defer span.End()

	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	key := GenerateKey(upload.Filename)
	if err := s.fileStore.Save(ctx, key, upload.Content, upload.ContentType); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.NewDomainError("STORAGE_FAILED", "Could not store the uploaded file")
	}

	attachment, err := catalog.NewAttachment(upload.Name, catalog.AttachmentType(upload.AttachmentType), key)
	if err != nil {
		// Roll back the stored file so no orphan remains
		if cleanupErr := s.fileStore.Delete(ctx, key); cleanupErr != nil {
			logger.L(ctx).Warn("Failed to clean up stored file after rejected attachment",
				zap.String("file_key", key), zap.Error(cleanupErr))
		}
		return nil, err
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		if cleanupErr := s.fileStore.Delete(ctx, key); cleanupErr != nil {
			logger.L(ctx).Warn("Failed to clean up stored file after failed insert",
				zap.String("file_key", key), zap.Error(cleanupErr))
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToAttachmentResponse(attachment)
	return &resp, nil
}

// UpdateAttachment updates the attachment's metadata and optionally replaces
// its file. The previous file is deleted only after the row update succeeds.
func (s *AttachmentService) UpdateAttachment(ctx context.Context, id uuid.UUID, upload AttachmentUpload) (*AttachmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "update")
	defer span.End()

	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := attachment.Update(upload.Name, catalog.AttachmentType(upload.AttachmentType)); err != nil {
		return nil, err
	}

	var oldKey string
	if len(upload.Content) > 0 {
		if err := validateUpload(upload); err != nil {
			return nil, err
		}

		key := GenerateKey(upload.Filename)
		if err := s.fileStore.Save(ctx, key, upload.Content, upload.ContentType); err != nil {
			telemetry.RecordError(span, err)
			return nil, shared.NewDomainError("STORAGE_FAILED", "Could not store the uploaded file")
		}
		if oldKey, err = attachment.ReplaceFile(key); err != nil {
			return nil, err
		}
	}

	if err := s.attachmentRepo.Update(ctx, attachment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if oldKey != "" {
		if err := s.fileStore.Delete(ctx, oldKey); err != nil {
			logger.L(ctx).Warn("Failed to delete replaced attachment file",
				zap.String("file_key", oldKey), zap.Error(err))
		}
	}

	resp := ToAttachmentResponse(attachment)
	return &resp, nil
}

// GetAttachment returns a single attachment
func (s *AttachmentService) GetAttachment(ctx context.Context, id uuid.UUID) (*AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToAttachmentResponse(attachment)
	return &resp, nil
}

// DownloadAttachment returns the attachment metadata and its file content
func (s *AttachmentService) DownloadAttachment(ctx context.Context, id uuid.UUID) (*AttachmentResponse, []byte, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.fileStore.Read(ctx, attachment.FileKey)
	if err != nil {
		return nil, nil, shared.NewDomainError("STORAGE_FAILED", "Could not read the stored file")
	}

	resp := ToAttachmentResponse(attachment)
	return &resp, content, nil
}

// ListAttachments returns attachments matching the search term, newest first.
// isActive filters by state when non-nil.
func (s *AttachmentService) ListAttachments(ctx context.Context, search string, isActive *bool) ([]AttachmentResponse, error) {
	filter := shared.ListFilter{Search: strings.TrimSpace(search)}.WithCeiling(maxAttachments)

	attachments, err := s.attachmentRepo.FindAll(ctx, isActive, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		responses = append(responses, ToAttachmentResponse(a))
	}
	return responses, nil
}

// ToggleAttachmentActive flips the attachment's active flag
func (s *AttachmentService) ToggleAttachmentActive(ctx context.Context, id uuid.UUID) (*AttachmentResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attachment.ToggleActive()
	if err := s.attachmentRepo.Update(ctx, attachment); err != nil {
		return nil, err
	}

	resp := ToAttachmentResponse(attachment)
	return &resp, nil
}

// DeleteAttachment removes the row and then the stored file. A file that can
// no longer be deleted is logged and left behind rather than failing the
// operation, since the row is already gone.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "attachment", "delete")
	defer span.End()

	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.fileStore.Delete(ctx, attachment.FileKey); err != nil {
		logger.L(ctx).Warn("Failed to delete attachment file",
			zap.String("file_key", attachment.FileKey), zap.Error(err))
	}
	return nil
}

func validateUpload(upload AttachmentUpload) error {
	if len(upload.Content) == 0 {
		return shared.NewDomainError("INVALID_FILE", "Uploaded file is empty")
	}
	if len(upload.Content) > MaxAttachmentSize {
		return shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("Uploaded file exceeds the %d MB limit", MaxAttachmentSize>>20))
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[ext] {
		return shared.NewDomainError("DISALLOWED_FILE_TYPE",
			fmt.Sprintf("File type %q is not allowed", ext))
	}
	return nil
}
