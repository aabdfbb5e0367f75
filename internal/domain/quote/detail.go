package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the list-view projection of a quote joined with its client
type Summary struct {
	ID             uuid.UUID       `json:"id"`
	Number         int             `json:"number"`
	Status         QuoteStatus     `json:"status"`
	Total          decimal.Decimal `json:"total"`
	CreatedBy      string          `json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`
	ClientID       uuid.UUID       `json:"clientId"`
	ClientName     string          `json:"clientName"`
	ClientEmail    string          `json:"clientEmail"`
	ClientIDNumber string          `json:"clientIdNumber"`
}

// ClientBlock is the client information printed on the quote document
type ClientBlock struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Company  string    `json:"company"`
	IDNumber string    `json:"idNumber"`
	Contact  string    `json:"contact"`
	Email    string    `json:"email"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
}

// DetailLine is one line item enriched with product display info
type DetailLine struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Tax         int             `json:"tax"`
}

// LineTotal returns price * quantity for the detail line
func (l DetailLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Detail is the full projection used by the detail endpoint, the PDF
// renderer and the mail dispatcher
type Detail struct {
	ID        uuid.UUID       `json:"id"`
	Number    int             `json:"number"`
	Status    QuoteStatus     `json:"status"`
	Notes     string          `json:"notes"`
	CreatedBy string          `json:"createdBy"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
	Client    ClientBlock     `json:"client"`
	Lines     []DetailLine    `json:"lines"`
}

// Subtotal returns the sum of per-line tax bases, rounded to 2dp
func (d *Detail) Subtotal() decimal.Decimal {
	sub := decimal.Zero
	for _, l := range d.Lines {
		sub = sub.Add(taxBase(l.LineTotal(), l.Tax))
	}
	return sub.Round(2)
}

// TaxTotal returns the tax portion of the total, rounded to 2dp
func (d *Detail) TaxTotal() decimal.Decimal {
	tax := decimal.Zero
	for _, l := range d.Lines {
		gross := l.LineTotal()
		tax = tax.Add(gross.Sub(taxBase(gross, l.Tax)))
	}
	return tax.Round(2)
}

func taxBase(gross decimal.Decimal, tax int) decimal.Decimal {
	if tax == 0 {
		return gross
	}
	divisor := decimal.NewFromInt(1).Add(
		decimal.NewFromInt(int64(tax)).Div(decimal.NewFromInt(100)))
	return gross.DivRound(divisor, 6)
}
