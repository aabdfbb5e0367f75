package persistence

import (
	"context"
	"errors"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements catalog.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create inserts a new attachment
func (r *GormAttachmentRepository) Create(ctx context.Context, attachment *catalog.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// Update persists changes to an existing attachment
func (r *GormAttachmentRepository) Update(ctx context.Context, attachment *catalog.Attachment) error {
	result := r.db.WithContext(ctx).Save(attachment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the attachment row
func (r *GormAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Attachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an attachment by its ID
func (r *GormAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attachment, error) {
	var attachment catalog.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// FindAll returns attachments ordered newest-first
func (r *GormAttachmentRepository) FindAll(ctx context.Context, isActive *bool, filter shared.ListFilter) ([]*catalog.Attachment, error) {
	var attachments []*catalog.Attachment
	query := r.db.WithContext(ctx).Model(&catalog.Attachment{}).Order("created_at DESC")
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindActiveByType returns active attachments applicable to the given type.
// Type Both matches any filter, and a Both filter matches every row.
func (r *GormAttachmentRepository) FindActiveByType(ctx context.Context, attachmentType catalog.AttachmentType) ([]*catalog.Attachment, error) {
	var attachments []*catalog.Attachment
	query := r.db.WithContext(ctx).
		Model(&catalog.Attachment{}).
		Where("is_active = ?", true).
		Order("created_at DESC")
	if attachmentType != catalog.AttachmentTypeBoth {
		query = query.Where("attachment_type IN ?", []catalog.AttachmentType{attachmentType, catalog.AttachmentTypeBoth})
	}
	if err := query.Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Ensure GormAttachmentRepository implements catalog.AttachmentRepository
var _ catalog.AttachmentRepository = (*GormAttachmentRepository)(nil)
