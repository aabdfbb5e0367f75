package catalog

import (
	"strings"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product or service in the catalog.
// Price is tax-inclusive; Tax is the percentage contained in the price.
type Product struct {
	shared.BaseEntity
	ProductType int             `gorm:"not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Tax         int             `gorm:"not null"`
	Stock       int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(productType int, name, description string, price decimal.Decimal, tax, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if tax < 0 || tax > 100 {
		return nil, shared.NewDomainError("INVALID_TAX", "Tax rate must be between 0 and 100")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		ProductType: productType,
		Name:        name,
		Description: description,
		Price:       price,
		Tax:         tax,
		Stock:       stock,
		IsActive:    true,
	}, nil
}

// Update replaces the product's editable fields
func (p *Product) Update(productType int, name, description string, price decimal.Decimal, tax, stock int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if tax < 0 || tax > 100 {
		return shared.NewDomainError("INVALID_TAX", "Tax rate must be between 0 and 100")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.ProductType = productType
	p.Name = name
	p.Description = description
	p.Price = price
	p.Tax = tax
	p.Stock = stock
	p.Touch()
	return nil
}

// ToggleActive flips the active flag and reports the new state
func (p *Product) ToggleActive() bool {
	p.IsActive = !p.IsActive
	p.Touch()
	return p.IsActive
}
