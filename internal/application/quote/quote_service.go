// Package quote implements the quote lifecycle use cases.
package quote

import (
	"context"
	"errors"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// QuoteService handles quote creation, edits and lifecycle transitions.
// Totals are always recomputed server-side from the line items.
type QuoteService struct {
	quoteRepo   quote.QuoteRepository
	clientRepo  catalog.ClientRepository
	productRepo catalog.ProductRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quoteRepo quote.QuoteRepository, clientRepo catalog.ClientRepository, productRepo catalog.ProductRepository) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// CreateQuote creates a quote with its line items in one atomic write
func (s *QuoteService) CreateQuote(ctx context.Context, createdBy string, req CreateQuoteRequest) (*quote.Quote, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "create",
		attribute.String(telemetry.SpanAttrClientID, req.ClientID.String()))
	defer span.End()

	if err := s.checkReferences(ctx, req.ClientID, req.Items); err != nil {
		return nil, err
	}

	q, err := quote.NewQuote(req.ClientID, createdBy, req.Notes, toItemInputs(req.Items))
	if err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Create(ctx, q); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return q, nil
}

// UpdateQuote rewrites the quote's client, notes and full line item set
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, req UpdateQuoteRequest) (*quote.Quote, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "update",
		attribute.String(telemetry.SpanAttrQuoteID, id.String()))
	defer span.End()

	q, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.ClientID, req.Items); err != nil {
		return nil, err
	}

	q.ClientID = req.ClientID
	if err := q.SetStatus(quote.QuoteStatus(req.Status)); err != nil {
		return nil, err
	}
	q.SetNotes(req.Notes)
	if err := q.ReplaceItems(toItemInputs(req.Items)); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.Update(ctx, q); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return q, nil
}

// DeleteQuote removes the quote and its line items
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "delete",
		attribute.String(telemetry.SpanAttrQuoteID, id.String()))
	defer span.End()

	if err := s.quoteRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// SetQuoteStatus transitions the quote to a new lifecycle state
func (s *QuoteService) SetQuoteStatus(ctx context.Context, id uuid.UUID, req StatusRequest) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "set_status",
		attribute.String(telemetry.SpanAttrQuoteID, id.String()),
		attribute.String(telemetry.SpanAttrQuoteStatus, req.Status))
	defer span.End()

	status := quote.QuoteStatus(req.Status)
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid quote status: "+req.Status)
	}

	if _, err := s.quoteRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// GetQuote loads a quote with its raw line items
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	return s.quoteRepo.FindByID(ctx, id)
}

// GetQuoteDetail loads the full detail projection used by the detail view,
// the PDF document and the outgoing email
func (s *QuoteService) GetQuoteDetail(ctx context.Context, id uuid.UUID) (*quote.Detail, error) {
	return s.quoteRepo.FindDetail(ctx, id)
}

// ListQuotes returns quote summaries newest-first. Status "All" or empty
// disables the status filter; the search term matches the client's email
// and identification number.
func (s *QuoteService) ListQuotes(ctx context.Context, req ListRequest) ([]quote.Summary, error) {
	if req.Status != "" && req.Status != quote.StatusFilterAll {
		if !quote.QuoteStatus(req.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid quote status: "+req.Status)
		}
	}

	return s.quoteRepo.FindAll(ctx, quote.ListQuery{
		Status: req.Status,
		Search: req.Search,
		Limit:  maxQuotes,
	})
}

// UpdateLineItem reprices a single line item; the quote total is refreshed
// in the same transaction
func (s *QuoteService) UpdateLineItem(ctx context.Context, quoteID, itemID uuid.UUID, req LineItemRequest) (*quote.LineItem, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "update_line_item",
		attribute.String(telemetry.SpanAttrQuoteID, quoteID.String()))
	defer span.End()

	item, err := s.quoteRepo.FindLineItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.QuoteID != quoteID {
		return nil, shared.ErrNotFound
	}

	if err := item.Reprice(req.Price, req.Quantity, req.Tax); err != nil {
		return nil, err
	}

	if err := s.quoteRepo.SaveLineItem(ctx, item); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return item, nil
}

// DeleteLineItem removes one line item. A quote always keeps at least one.
func (s *QuoteService) DeleteLineItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "delete_line_item",
		attribute.String(telemetry.SpanAttrQuoteID, quoteID.String()))
	defer span.End()

	q, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return err
	}

	found := false
	for i := range q.LineItems {
		if q.LineItems[i].ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return shared.ErrNotFound
	}
	if len(q.LineItems) == 1 {
		return shared.NewDomainError("NO_ITEMS", "Quote requires at least one line item")
	}

	if err := s.quoteRepo.DeleteLineItem(ctx, itemID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	return nil
}

// checkReferences verifies that the client and every product exist before
// the write starts
func (s *QuoteService) checkReferences(ctx context.Context, clientID uuid.UUID, items []ItemRequest) error {
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CLIENT", "Client does not exist")
		}
		return err
	}

	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		if _, err := s.productRepo.FindByID(ctx, it.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PRODUCT", "Product does not exist: "+it.ProductID.String())
			}
			return err
		}
	}
	return nil
}
