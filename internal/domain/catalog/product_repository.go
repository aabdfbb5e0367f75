package catalog

import (
	"context"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns products ordered newest-first
	FindAll(ctx context.Context, filter shared.ListFilter) ([]*Product, error)
}
