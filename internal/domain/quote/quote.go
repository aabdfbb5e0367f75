package quote

import (
	"time"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	StatusPending  QuoteStatus = "Pending"
	StatusAccepted QuoteStatus = "Accepted"
	StatusRejected QuoteStatus = "Rejected"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// LineItem is a priced snapshot of a product at quoting time.
// Price and tax are frozen on the line and never synced back
// to the live product.
type LineItem struct {
	shared.BaseEntity
	QuoteID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"quoteId"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Tax       int             `gorm:"not null;default:0" json:"tax"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "quote_line_items"
}

// NewLineItem creates a line item snapshot for a quote
func NewLineItem(quoteID, productID uuid.UUID, price decimal.Decimal, quantity, tax int) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if tax < 0 || tax > 100 {
		return nil, shared.NewDomainError("INVALID_TAX", "Tax rate must be between 0 and 100")
	}

	return &LineItem{
		BaseEntity: shared.NewBaseEntity(),
		QuoteID:    quoteID,
		ProductID:  productID,
		Price:      price,
		Quantity:   quantity,
		Tax:        tax,
	}, nil
}

// LineTotal returns price * quantity for the item. Prices are
// tax-inclusive, so this is the gross amount.
func (i *LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TaxBase returns the pre-tax portion of the line total,
// gross / (1 + tax/100), unrounded.
func (i *LineItem) TaxBase() decimal.Decimal {
	if i.Tax == 0 {
		return i.LineTotal()
	}
	divisor := decimal.NewFromInt(1).Add(
		decimal.NewFromInt(int64(i.Tax)).Div(decimal.NewFromInt(100)))
	return i.LineTotal().DivRound(divisor, 6)
}

// TaxAmount returns the tax portion of the line total, unrounded.
func (i *LineItem) TaxAmount() decimal.Decimal {
	return i.LineTotal().Sub(i.TaxBase())
}

// Reprice updates the frozen price and quantity on the line
func (i *LineItem) Reprice(price decimal.Decimal, quantity, tax int) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if tax < 0 || tax > 100 {
		return shared.NewDomainError("INVALID_TAX", "Tax rate must be between 0 and 100")
	}
	i.Price = price
	i.Quantity = quantity
	i.Tax = tax
	i.Touch()
	return nil
}

// Quote is the aggregate root for a priced offer to a client.
// The stored total is always recomputed from the line items;
// caller-supplied totals are never trusted.
type Quote struct {
	shared.BaseEntity
	Number    int             `gorm:"autoIncrement;uniqueIndex" json:"number"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"clientId"`
	Status    QuoteStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedBy string          `gorm:"type:varchar(100);not null" json:"createdBy"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	LineItems []LineItem      `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"lineItems"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// ItemInput carries the caller-supplied values for one line item
type ItemInput struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
	Quantity  int
	Tax       int
}

// NewQuote creates a quote with its line items in Pending status.
// The total is computed from the items.
func NewQuote(clientID uuid.UUID, createdBy, notes string, items []ItemInput) (*Quote, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if createdBy == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Created by cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Quote requires at least one line item")
	}

	q := &Quote{
		BaseEntity: shared.NewBaseEntity(),
		ClientID:   clientID,
		Status:     StatusPending,
		Notes:      notes,
		CreatedBy:  createdBy,
		LineItems:  make([]LineItem, 0, len(items)),
	}
	if err := q.setItems(items); err != nil {
		return nil, err
	}
	return q, nil
}

// ReplaceItems swaps the full line item set and recomputes the total
func (q *Quote) ReplaceItems(items []ItemInput) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Quote requires at least one line item")
	}
	q.LineItems = q.LineItems[:0]
	if err := q.setItems(items); err != nil {
		return err
	}
	q.Touch()
	return nil
}

func (q *Quote) setItems(items []ItemInput) error {
	for _, in := range items {
		item, err := NewLineItem(q.ID, in.ProductID, in.Price, in.Quantity, in.Tax)
		if err != nil {
			return err
		}
		q.LineItems = append(q.LineItems, *item)
	}
	q.RecalculateTotal()
	return nil
}

// SetStatus transitions the quote to the given status
func (q *Quote) SetStatus(status QuoteStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid quote status: "+status.String())
	}
	q.Status = status
	q.Touch()
	return nil
}

// SetNotes updates the free-form notes block
func (q *Quote) SetNotes(notes string) {
	q.Notes = notes
	q.Touch()
}

// RecalculateTotal recomputes the stored total from the line items
func (q *Quote) RecalculateTotal() {
	total := decimal.Zero
	for i := range q.LineItems {
		total = total.Add(q.LineItems[i].LineTotal())
	}
	q.Total = total.Round(2)
}

// Subtotal returns the sum of the tax bases of all items, rounded to 2dp
func (q *Quote) Subtotal() decimal.Decimal {
	sub := decimal.Zero
	for i := range q.LineItems {
		sub = sub.Add(q.LineItems[i].TaxBase())
	}
	return sub.Round(2)
}

// TaxTotal returns the tax portion of the quote total, rounded to 2dp
func (q *Quote) TaxTotal() decimal.Decimal {
	tax := decimal.Zero
	for i := range q.LineItems {
		tax = tax.Add(q.LineItems[i].TaxAmount())
	}
	return tax.Round(2)
}

// IssuedOn returns the quote creation date, which drives every
// date shown on the rendered document.
func (q *Quote) IssuedOn() time.Time {
	return q.CreatedAt
}
