package quote

import (
	"context"
	"testing"

	"github.com/cotizador/backend/internal/domain/catalog"
	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuoteRepository is a mock implementation of quote.QuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status quote.QuoteStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAll(ctx context.Context, query quote.ListQuery) ([]quote.Summary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quote.Summary), args.Error(1)
}

func (m *MockQuoteRepository) FindDetail(ctx context.Context, id uuid.UUID) (*quote.Detail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Detail), args.Error(1)
}

func (m *MockQuoteRepository) FindLineItem(ctx context.Context, itemID uuid.UUID) (*quote.LineItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.LineItem), args.Error(1)
}

func (m *MockQuoteRepository) SaveLineItem(ctx context.Context, item *quote.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockQuoteRepository) DeleteLineItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of catalog.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *catalog.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *catalog.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) FindActive(ctx context.Context, filter shared.ListFilter) ([]*catalog.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, idNumber, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) AddEmail(ctx context.Context, email *catalog.ClientEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockClientRepository) FindEmails(ctx context.Context, clientID uuid.UUID) ([]catalog.ClientEmail, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ClientEmail), args.Error(1)
}

func (m *MockClientRepository) DeleteEmail(ctx context.Context, clientID uuid.UUID, email string) error {
	args := m.Called(ctx, clientID, email)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.ListFilter) ([]*catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

type quoteFixture struct {
	svc         *QuoteService
	quoteRepo   *MockQuoteRepository
	clientRepo  *MockClientRepository
	productRepo *MockProductRepository
	client      *catalog.Client
	product     *catalog.Product
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	client, err := catalog.NewClient(1, "María Rodríguez", "", "900123456", "300",
		"maria@example.com", "Calle 10", "Valle", "Cali")
	require.NoError(t, err)

	product, err := catalog.NewProduct(1, "Instalación", "Punto de red", decimal.NewFromInt(119), 19, 5)
	require.NoError(t, err)

	f := &quoteFixture{
		quoteRepo:   new(MockQuoteRepository),
		clientRepo:  new(MockClientRepository),
		productRepo: new(MockProductRepository),
		client:      client,
		product:     product,
	}
	f.svc = NewQuoteService(f.quoteRepo, f.clientRepo, f.productRepo)
	return f
}

func (f *quoteFixture) validCreateRequest() CreateQuoteRequest {
	return CreateQuoteRequest{
		ClientID: f.client.ID,
		Notes:    "Entrega en 15 días",
		Items: []ItemRequest{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(119), Quantity: 2, Tax: 19},
		},
	}
}

func TestQuoteServiceCreate(t *testing.T) {
	t.Run("creates quote with recomputed total", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.productRepo.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.quoteRepo.On("Create", mock.Anything, mock.AnythingOfType("*quote.Quote")).Return(nil)

		q, err := f.svc.CreateQuote(context.Background(), "admin", f.validCreateRequest())
		require.NoError(t, err)
		assert.Equal(t, quote.StatusPending, q.Status)
		assert.True(t, q.Total.Equal(decimal.NewFromInt(238)))
		assert.Equal(t, "admin", q.CreatedBy)
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.CreateQuote(context.Background(), "admin", f.validCreateRequest())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CLIENT", domainErr.Code)
		f.quoteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.productRepo.On("FindByID", mock.Anything, f.product.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.CreateQuote(context.Background(), "admin", f.validCreateRequest())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT", domainErr.Code)
		f.quoteRepo.AssertNotCalled(t, "Create")
	})

	t.Run("propagates transaction failure", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.productRepo.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.quoteRepo.On("Create", mock.Anything, mock.AnythingOfType("*quote.Quote")).Return(shared.ErrTransactionFailed)

		_, err := f.svc.CreateQuote(context.Background(), "admin", f.validCreateRequest())
		assert.ErrorIs(t, err, shared.ErrTransactionFailed)
	})
}

func TestQuoteServiceUpdate(t *testing.T) {
	t.Run("rewrites scalars including status", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
		})
		require.NoError(t, err)

		f.quoteRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.productRepo.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.quoteRepo.On("Update", mock.Anything, existing).Return(nil)

		q, err := f.svc.UpdateQuote(context.Background(), existing.ID, UpdateQuoteRequest{
			ClientID: f.client.ID,
			Status:   "Accepted",
			Notes:    "actualizado",
			Items: []ItemRequest{
				{ProductID: f.product.ID, Price: decimal.NewFromInt(119), Quantity: 2, Tax: 19},
			},
		})
		require.NoError(t, err)
		assert.True(t, q.Total.Equal(decimal.NewFromInt(238)))
		assert.Equal(t, "actualizado", q.Notes)
		assert.Equal(t, quote.StatusAccepted, q.Status)
		require.Len(t, q.LineItems, 1)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
		})
		require.NoError(t, err)

		f.quoteRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		f.clientRepo.On("FindByID", mock.Anything, f.client.ID).Return(f.client, nil)
		f.productRepo.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)

		_, err = f.svc.UpdateQuote(context.Background(), existing.ID, UpdateQuoteRequest{
			ClientID: f.client.ID,
			Status:   "Archived",
			Notes:    "actualizado",
			Items: []ItemRequest{
				{ProductID: f.product.ID, Price: decimal.NewFromInt(119), Quantity: 2, Tax: 19},
			},
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
		f.quoteRepo.AssertNotCalled(t, "Update")
	})
}

func TestQuoteServiceSetStatus(t *testing.T) {
	t.Run("accepts valid status", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
		})
		require.NoError(t, err)

		f.quoteRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		f.quoteRepo.On("UpdateStatus", mock.Anything, existing.ID, quote.StatusAccepted).Return(nil)

		require.NoError(t, f.svc.SetQuoteStatus(context.Background(), existing.ID, StatusRequest{Status: "Accepted"}))
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newQuoteFixture(t)

		err := f.svc.SetQuoteStatus(context.Background(), uuid.New(), StatusRequest{Status: "Archived"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
		f.quoteRepo.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestQuoteServiceList(t *testing.T) {
	t.Run("passes filters with ceiling", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.quoteRepo.On("FindAll", mock.Anything, quote.ListQuery{
			Status: "Pending",
			Search: "maria",
			Limit:  maxQuotes,
		}).Return([]quote.Summary{}, nil)

		_, err := f.svc.ListQuotes(context.Background(), ListRequest{Status: "Pending", Search: "maria"})
		require.NoError(t, err)
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("All sentinel disables the status filter", func(t *testing.T) {
		f := newQuoteFixture(t)

		f.quoteRepo.On("FindAll", mock.Anything, quote.ListQuery{
			Status: quote.StatusFilterAll,
			Limit:  maxQuotes,
		}).Return([]quote.Summary{}, nil)

		_, err := f.svc.ListQuotes(context.Background(), ListRequest{Status: quote.StatusFilterAll})
		require.NoError(t, err)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		f := newQuoteFixture(t)

		_, err := f.svc.ListQuotes(context.Background(), ListRequest{Status: "Archived"})
		require.Error(t, err)
		f.quoteRepo.AssertNotCalled(t, "FindAll")
	})
}

func TestQuoteServiceLineItems(t *testing.T) {
	t.Run("reprices a line item", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
		})
		require.NoError(t, err)
		item := &existing.LineItems[0]
		item.QuoteID = existing.ID

		f.quoteRepo.On("FindLineItem", mock.Anything, item.ID).Return(item, nil)
		f.quoteRepo.On("SaveLineItem", mock.Anything, item).Return(nil)

		updated, err := f.svc.UpdateLineItem(context.Background(), existing.ID, item.ID, LineItemRequest{
			Price:    decimal.NewFromInt(150),
			Quantity: 3,
			Tax:      19,
		})
		require.NoError(t, err)
		assert.True(t, updated.Price.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, 3, updated.Quantity)
	})

	t.Run("item from another quote is not found", func(t *testing.T) {
		f := newQuoteFixture(t)

		item, err := quote.NewLineItem(uuid.New(), f.product.ID, decimal.NewFromInt(100), 1, 0)
		require.NoError(t, err)

		f.quoteRepo.On("FindLineItem", mock.Anything, item.ID).Return(item, nil)

		_, err = f.svc.UpdateLineItem(context.Background(), uuid.New(), item.ID, LineItemRequest{
			Price:    decimal.NewFromInt(1),
			Quantity: 1,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses to delete the last line item", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
		})
		require.NoError(t, err)

		f.quoteRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		err = f.svc.DeleteLineItem(context.Background(), existing.ID, existing.LineItems[0].ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_ITEMS", domainErr.Code)
		f.quoteRepo.AssertNotCalled(t, "DeleteLineItem")
	})

	t.Run("deletes one of several line items", func(t *testing.T) {
		f := newQuoteFixture(t)

		existing, err := quote.NewQuote(f.client.ID, "admin", "", []quote.ItemInput{
			{ProductID: f.product.ID, Price: decimal.NewFromInt(100), Quantity: 1, Tax: 0},
			{ProductID: f.product.ID, Price: decimal.NewFromInt(50), Quantity: 2, Tax: 19},
		})
		require.NoError(t, err)
		itemID := existing.LineItems[1].ID

		f.quoteRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		f.quoteRepo.On("DeleteLineItem", mock.Anything, itemID).Return(nil)

		require.NoError(t, f.svc.DeleteLineItem(context.Background(), existing.ID, itemID))
		f.quoteRepo.AssertExpectations(t)
	})
}
