package quote

import (
	"context"

	"github.com/google/uuid"
)

// StatusFilterAll is the sentinel accepted by ListQuery.Status
// meaning "do not filter by status".
const StatusFilterAll = "All"

// ListQuery carries the filters for the quote list view
type ListQuery struct {
	// Status filters by lifecycle state; empty or StatusFilterAll disables it
	Status string
	// Search is a case-insensitive substring matched against the
	// joined client's email and identification number
	Search string
	// Limit caps the result set; the repository clamps it to its ceiling
	Limit int
}

// QuoteRepository defines the interface for quote persistence.
// Writes touching a quote and its line items are atomic.
type QuoteRepository interface {
	// Create inserts the quote and all of its line items in one transaction
	Create(ctx context.Context, quote *Quote) error

	// Update rewrites the quote scalars and replaces the full line item
	// set in one transaction
	Update(ctx context.Context, quote *Quote) error

	// Delete removes the quote and its line items in one transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus changes only the status column
	UpdateStatus(ctx context.Context, id uuid.UUID, status QuoteStatus) error

	// FindByID loads a quote with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)

	// FindAll returns summaries newest-first matching the query
	FindAll(ctx context.Context, query ListQuery) ([]Summary, error)

	// FindDetail loads the full detail view for one quote, including
	// the client block and product display info per line
	FindDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// FindLineItem loads one line item by its ID
	FindLineItem(ctx context.Context, itemID uuid.UUID) (*LineItem, error)

	// SaveLineItem persists changes to one line item and refreshes the
	// parent quote total in the same transaction
	SaveLineItem(ctx context.Context, item *LineItem) error

	// DeleteLineItem removes one line item and refreshes the parent
	// quote total in the same transaction
	DeleteLineItem(ctx context.Context, itemID uuid.UUID) error
}
