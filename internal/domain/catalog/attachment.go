package catalog

import (
	"strings"

	"github.com/cotizador/backend/internal/domain/shared"
)

// AttachmentType classifies which quote emails an attachment applies to
type AttachmentType int

const (
	AttachmentTypeProduct AttachmentType = 1
	AttachmentTypeService AttachmentType = 2
	AttachmentTypeBoth    AttachmentType = 3
)

// IsValid checks if the value is part of the closed enumeration
func (t AttachmentType) IsValid() bool {
	switch t {
	case AttachmentTypeProduct, AttachmentTypeService, AttachmentTypeBoth:
		return true
	}
	return false
}

// Attachment is a reusable supplementary file (catalog, brochure) that can be
// bundled into outgoing quote emails. FileKey references the stored file; a row
// is never persisted without a stored file behind it.
type Attachment struct {
	shared.BaseEntity
	Name           string         `gorm:"type:varchar(200);not null"`
	AttachmentType AttachmentType `gorm:"not null"`
	FileKey        string         `gorm:"type:varchar(300);not null"`
	IsActive       bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Attachment) TableName() string {
	return "attachments"
}

// NewAttachment creates a new active attachment referencing a stored file
func NewAttachment(name string, attachmentType AttachmentType, fileKey string) (*Attachment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attachment name cannot be empty")
	}
	if !attachmentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT_TYPE", "Attachment type must be 1 (Product), 2 (Service) or 3 (Both)")
	}
	if fileKey == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "Attachment requires a stored file")
	}

	return &Attachment{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		AttachmentType: attachmentType,
		FileKey:        fileKey,
		IsActive:       true,
	}, nil
}

// Update replaces the attachment's name and type
func (a *Attachment) Update(name string, attachmentType AttachmentType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Attachment name cannot be empty")
	}
	if !attachmentType.IsValid() {
		return shared.NewDomainError("INVALID_ATTACHMENT_TYPE", "Attachment type must be 1 (Product), 2 (Service) or 3 (Both)")
	}
	a.Name = name
	a.AttachmentType = attachmentType
	a.Touch()
	return nil
}

// ReplaceFile swaps the file reference and returns the previous key so the
// caller can delete the physical file
func (a *Attachment) ReplaceFile(fileKey string) (string, error) {
	if fileKey == "" {
		return "", shared.NewDomainError("INVALID_FILE", "Attachment requires a stored file")
	}
	old := a.FileKey
	a.FileKey = fileKey
	a.Touch()
	return old, nil
}

// ToggleActive flips the active flag and reports the new state
func (a *Attachment) ToggleActive() bool {
	a.IsActive = !a.IsActive
	a.Touch()
	return a.IsActive
}

// AppliesTo reports whether the attachment should accompany emails filtered
// by the given type. Type Both matches either filter.
func (a *Attachment) AppliesTo(filter AttachmentType) bool {
	return a.AttachmentType == filter || a.AttachmentType == AttachmentTypeBoth || filter == AttachmentTypeBoth
}
