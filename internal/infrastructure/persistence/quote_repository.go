package persistence

import (
	"context"
	"errors"

	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuoteRepository implements quote.QuoteRepository using GORM.
// Every write that touches a quote and its line items runs inside a
// single transaction so a failure leaves no partial state behind.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Create inserts the quote and all of its line items atomically
func (r *GormQuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := q.LineItems
		q.LineItems = nil
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		q.LineItems = items
		if len(items) > 0 {
			if err := tx.Create(&q.LineItems).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.ErrTransactionFailed
	}
	return nil
}

// Update rewrites the quote scalars and replaces the full line item set
func (r *GormQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&quote.Quote{}).
			Where("id = ?", q.ID).
			Updates(map[string]any{
				"client_id":  q.ClientID,
				"status":     q.Status,
				"notes":      q.Notes,
				"total":      q.Total,
				"updated_at": q.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("quote_id = ?", q.ID).Delete(&quote.LineItem{}).Error; err != nil {
			return err
		}
		if len(q.LineItems) > 0 {
			if err := tx.Create(&q.LineItems).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if err != nil {
		return shared.ErrTransactionFailed
	}
	return nil
}

// Delete removes the quote and its line items atomically
func (r *GormQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&quote.LineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&quote.Quote{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if err != nil {
		return shared.ErrTransactionFailed
	}
	return nil
}

// UpdateStatus changes only the status column
func (r *GormQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status quote.QuoteStatus) error {
	result := r.db.WithContext(ctx).
		Model(&quote.Quote{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads a quote with its line items
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	var q quote.Quote
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindAll returns summaries newest-first matching the query
func (r *GormQuoteRepository) FindAll(ctx context.Context, query quote.ListQuery) ([]quote.Summary, error) {
	var summaries []quote.Summary

	q := r.db.WithContext(ctx).
		Table("quotes").
		Select(`quotes.id, quotes.number, quotes.status, quotes.total,
			quotes.created_by, quotes.created_at,
			clients.id AS client_id, clients.full_name AS client_name,
			clients.email AS client_email, clients.id_number AS client_id_number`).
		Joins("JOIN clients ON clients.id = quotes.client_id").
		Order("quotes.created_at DESC")

	if query.Status != "" && query.Status != quote.StatusFilterAll {
		q = q.Where("quotes.status = ?", query.Status)
	}
	if query.Search != "" {
		pattern := likePattern(query.Search)
		q = q.Where("LOWER(clients.email) LIKE ? OR LOWER(clients.id_number) LIKE ?", pattern, pattern)
	}
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	if err := q.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindDetail loads the full detail view for one quote
func (r *GormQuoteRepository) FindDetail(ctx context.Context, id uuid.UUID) (*quote.Detail, error) {
	q, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var client struct {
		ID       uuid.UUID
		FullName string
		Company  string `gorm:"column:company_name"`
		IDNumber string
		Contact  string
		Email    string
		Address  string
		City     string
	}
	if err := r.db.WithContext(ctx).
		Table("clients").
		Select("id, full_name, company_name, id_number, contact, email, address, city").
		Where("id = ?", q.ClientID).
		Scan(&client).Error; err != nil {
		return nil, err
	}

	detail := &quote.Detail{
		ID:        q.ID,
		Number:    q.Number,
		Status:    q.Status,
		Notes:     q.Notes,
		CreatedBy: q.CreatedBy,
		Total:     q.Total,
		CreatedAt: q.CreatedAt,
		Client: quote.ClientBlock{
			ID:       client.ID,
			FullName: client.FullName,
			Company:  client.Company,
			IDNumber: client.IDNumber,
			Contact:  client.Contact,
			Email:    client.Email,
			Address:  client.Address,
			City:     client.City,
		},
		Lines: make([]quote.DetailLine, 0, len(q.LineItems)),
	}

	// Product display info is joined in bulk rather than per line
	productNames := make(map[uuid.UUID]struct{ Name, Description string })
	if len(q.LineItems) > 0 {
		ids := make([]uuid.UUID, 0, len(q.LineItems))
		for _, item := range q.LineItems {
			ids = append(ids, item.ProductID)
		}
		var products []struct {
			ID          uuid.UUID
			Name        string
			Description string
		}
		if err := r.db.WithContext(ctx).
			Table("products").
			Select("id, name, description").
			Where("id IN ?", ids).
			Scan(&products).Error; err != nil {
			return nil, err
		}
		for _, p := range products {
			productNames[p.ID] = struct{ Name, Description string }{p.Name, p.Description}
		}
	}

	for _, item := range q.LineItems {
		info := productNames[item.ProductID]
		detail.Lines = append(detail.Lines, quote.DetailLine{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: info.Name,
			Description: info.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Tax:         item.Tax,
		})
	}

	return detail, nil
}

// FindLineItem loads one line item by its ID
func (r *GormQuoteRepository) FindLineItem(ctx context.Context, itemID uuid.UUID) (*quote.LineItem, error) {
	var item quote.LineItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// SaveLineItem persists changes to one line item and refreshes the
// parent quote total in the same transaction
func (r *GormQuoteRepository) SaveLineItem(ctx context.Context, item *quote.LineItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(item)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return refreshQuoteTotal(tx, item.QuoteID)
	})
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if err != nil {
		return shared.ErrTransactionFailed
	}
	return nil
}

// DeleteLineItem removes one line item and refreshes the parent quote
// total in the same transaction
func (r *GormQuoteRepository) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item quote.LineItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&quote.LineItem{}, "id = ?", itemID).Error; err != nil {
			return err
		}
		return refreshQuoteTotal(tx, item.QuoteID)
	})
	if errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if err != nil {
		return shared.ErrTransactionFailed
	}
	return nil
}

// refreshQuoteTotal recomputes the stored quote total from its line items
func refreshQuoteTotal(tx *gorm.DB, quoteID uuid.UUID) error {
	return tx.Exec(`UPDATE quotes
		SET total = COALESCE((SELECT SUM(price * quantity) FROM quote_line_items WHERE quote_id = ?), 0),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, quoteID, quoteID).Error
}

// Ensure GormQuoteRepository implements quote.QuoteRepository
var _ quote.QuoteRepository = (*GormQuoteRepository)(nil)
