package quote

import (
	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxQuotes caps the quote listing
const maxQuotes = 500

// ItemRequest is one line item in a quote write.
// Prices are frozen at the request values rather than copied from the
// product, so a later product price change never alters an issued quote.
type ItemRequest struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Tax       int             `json:"tax" binding:"min=0,max=100"`
}

// CreateQuoteRequest creates a quote with its full line item set
type CreateQuoteRequest struct {
	ClientID uuid.UUID     `json:"clientId" binding:"required"`
	Notes    string        `json:"notes" binding:"max=2000"`
	Items    []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateQuoteRequest rewrites a quote's scalars and replaces its items
type UpdateQuoteRequest struct {
	ClientID uuid.UUID     `json:"clientId" binding:"required"`
	Status   string        `json:"status" binding:"required"`
	Notes    string        `json:"notes" binding:"max=2000"`
	Items    []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// StatusRequest transitions a quote's lifecycle state
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LineItemRequest updates a single line item in place
type LineItemRequest struct {
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Tax      int             `json:"tax" binding:"min=0,max=100"`
}

// ListRequest carries the quote list filters
type ListRequest struct {
	Status string `form:"showState"`
	Search string `form:"search"`
}

func toItemInputs(items []ItemRequest) []quote.ItemInput {
	inputs := make([]quote.ItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, quote.ItemInput{
			ProductID: it.ProductID,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Tax:       it.Tax,
		})
	}
	return inputs
}
