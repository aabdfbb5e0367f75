package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements catalog.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts a new client
func (r *GormClientRepository) Create(ctx context.Context, client *catalog.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// Update persists changes to an existing client
func (r *GormClientRepository) Update(ctx context.Context, client *catalog.Client) error {
	result := r.db.WithContext(ctx).Omit("Emails").Save(client)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a client by its ID, including alternate addresses
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	var client catalog.Client
	if err := r.db.WithContext(ctx).
		Preload("Emails").
		First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll returns clients ordered newest-first
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	var clients []*catalog.Client
	query := r.applySearch(r.db.WithContext(ctx).Model(&catalog.Client{}), filter.Search).
		Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindActive returns active clients matching the search term
func (r *GormClientRepository) FindActive(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	var clients []*catalog.Client
	query := r.applySearch(
		r.db.WithContext(ctx).Model(&catalog.Client{}).Where("is_active = ?", true),
		filter.Search,
	).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// ExistsByIDNumber checks both active and inactive rows for the
// identification number, excluding the given client ID
func (r *GormClientRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Client{}).
		Where("id_number = ?", idNumber)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks both active and inactive rows for the email,
// excluding the given client ID
func (r *GormClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Client{}).
		Where("email = ?", strings.ToLower(email))
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddEmail persists an alternate recipient address
func (r *GormClientRepository) AddEmail(ctx context.Context, email *catalog.ClientEmail) error {
	return r.db.WithContext(ctx).Create(email).Error
}

// FindEmails returns a client's alternate recipient addresses
func (r *GormClientRepository) FindEmails(ctx context.Context, clientID uuid.UUID) ([]catalog.ClientEmail, error) {
	var emails []catalog.ClientEmail
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

// DeleteEmail removes an alternate recipient address
func (r *GormClientRepository) DeleteEmail(ctx context.Context, clientID uuid.UUID, email string) error {
	result := r.db.WithContext(ctx).
		Where("client_id = ? AND email = ?", clientID, strings.ToLower(email)).
		Delete(&catalog.ClientEmail{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormClientRepository) applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := likePattern(search)
	return query.Where("LOWER(full_name) LIKE ? OR LOWER(id_number) LIKE ? OR LOWER(email) LIKE ?",
		pattern, pattern, pattern)
}

// Ensure GormClientRepository implements catalog.ClientRepository
var _ catalog.ClientRepository = (*GormClientRepository)(nil)
