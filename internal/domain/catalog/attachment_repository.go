package catalog

import (
	"context"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttachmentRepository defines the interface for attachment persistence
type AttachmentRepository interface {
	// Create creates a new attachment
	Create(ctx context.Context, attachment *Attachment) error

	// Update updates an existing attachment
	Update(ctx context.Context, attachment *Attachment) error

	// Delete removes the attachment row. Physical file cleanup is the
	// caller's responsibility.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an attachment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attachment, error)

	// FindAll returns attachments ordered newest-first, optionally filtered
	// by active state and name substring
	FindAll(ctx context.Context, isActive *bool, filter shared.ListFilter) ([]*Attachment, error)

	// FindActiveByType returns active attachments applicable to the given type
	FindActiveByType(ctx context.Context, attachmentType AttachmentType) ([]*Attachment, error)
}
