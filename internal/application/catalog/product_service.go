package catalog

import (
	"context"
	"strings"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ProductService handles product management
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct registers a new product or service
func (s *ProductService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	product, err := catalog.NewProduct(req.ProductType, req.Name, req.Description, req.Price, req.Tax, req.Stock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateProduct replaces a product's editable fields
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update")
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.ProductType, req.Name, req.Description, req.Price, req.Tax, req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetProduct returns a single product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns products matching the search term, newest first
func (s *ProductService) ListProducts(ctx context.Context, search string) ([]ProductResponse, error) {
	filter := shared.ListFilter{Search: strings.TrimSpace(search)}.WithCeiling(maxProducts)

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, ToProductResponse(p))
	}
	return responses, nil
}

// ToggleProductActive flips the product's active flag
func (s *ProductService) ToggleProductActive(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ToggleActive()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}
