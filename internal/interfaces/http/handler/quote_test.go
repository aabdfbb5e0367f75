package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appquote "github.com/cotizador/backend/internal/application/quote"
	"github.com/cotizador/backend/internal/domain/quote"
	"github.com/cotizador/backend/internal/domain/shared"
)

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

type stubRenderer struct {
	content []byte
	err     error
}

func (s *stubRenderer) RenderQuote(detail *quote.Detail) ([]byte, error) {
	return s.content, s.err
}

func sampleQuoteDetail() *quote.Detail {
	return &quote.Detail{
		ID:        uuid.New(),
		Number:    42,
		Status:    quote.StatusPending,
		CreatedBy: "ana",
		Total:     decimal.NewFromInt(238),
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Client: quote.ClientBlock{
			ID:       uuid.New(),
			FullName: "María Rodríguez",
			IDNumber: "900123456",
			Email:    "maria@example.com",
		},
		Lines: []quote.DetailLine{
			{
				ID:          uuid.New(),
				ProductID:   uuid.New(),
				ProductName: "Producto",
				Price:       decimal.NewFromInt(100),
				Quantity:    2,
				Tax:         19,
			},
		},
	}
}

func setupQuoteRouter(repo quote.QuoteRepository, renderer *stubRenderer) *gin.Engine {
	service := appquote.NewQuoteService(repo, nil, nil)
	h := NewQuoteHandler(service, renderer, nil)

	router := gin.New()
	router.GET("/quote", h.List)
	router.GET("/quote/:id", h.Get)
	router.GET("/quote/generate-pdf/:id", h.GeneratePDF)
	router.POST("/quote/update-status/:id", h.UpdateStatus)
	return router
}

func TestQuoteHandlerList(t *testing.T) {
	t.Run("passes status and search filters through", func(t *testing.T) {
		repo := new(MockQuoteRepository)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(q quote.ListQuery) bool {
			return q.Status == "Accepted" && q.Search == "maria"
		})).Return([]quote.Summary{}, nil)

		router := setupQuoteRouter(repo, &stubRenderer{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote?showState=Accepted&search=maria", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 0, resp.Meta.Count)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		repo := new(MockQuoteRepository)
		router := setupQuoteRouter(repo, &stubRenderer{})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote?showState=Archived", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindAll")
	})
}

func TestQuoteHandlerGet(t *testing.T) {
	t.Run("returns quote detail", func(t *testing.T) {
		detail := sampleQuoteDetail()
		repo := new(MockQuoteRepository)
		repo.On("FindDetail", mock.Anything, detail.ID).Return(detail, nil)

		router := setupQuoteRouter(repo, &stubRenderer{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote/"+detail.ID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "María Rodríguez")
	})

	t.Run("missing quote yields 404", func(t *testing.T) {
		repo := new(MockQuoteRepository)
		repo.On("FindDetail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		router := setupQuoteRouter(repo, &stubRenderer{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestQuoteHandlerGeneratePDF(t *testing.T) {
	t.Run("streams the rendered document", func(t *testing.T) {
		detail := sampleQuoteDetail()
		repo := new(MockQuoteRepository)
		repo.On("FindDetail", mock.Anything, detail.ID).Return(detail, nil)

		renderer := &stubRenderer{content: []byte("%PDF-1.4 fake")}
		router := setupQuoteRouter(repo, renderer)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote/generate-pdf/"+detail.ID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "cotizacion_42.pdf")
		assert.Equal(t, "%PDF-1.4 fake", w.Body.String())
	})

	t.Run("render failure maps to RENDER_FAILED", func(t *testing.T) {
		detail := sampleQuoteDetail()
		repo := new(MockQuoteRepository)
		repo.On("FindDetail", mock.Anything, detail.ID).Return(detail, nil)

		renderer := &stubRenderer{err: assert.AnError}
		router := setupQuoteRouter(repo, renderer)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quote/generate-pdf/"+detail.ID.String(), nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "RENDER_FAILED", resp.Error.Code)
	})
}

func TestQuoteHandlerUpdateStatus(t *testing.T) {
	t.Run("accepts a known status", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockQuoteRepository)
		repo.On("FindByID", mock.Anything, id).Return(&quote.Quote{}, nil)
		repo.On("UpdateStatus", mock.Anything, id, quote.StatusAccepted).Return(nil)

		router := setupQuoteRouter(repo, &stubRenderer{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/quote/update-status/"+id.String(), strings.NewReader(`{"status":"Accepted"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := new(MockQuoteRepository)
		router := setupQuoteRouter(repo, &stubRenderer{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/quote/update-status/"+uuid.NewString(), strings.NewReader(`{"status":"Archived"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "UpdateStatus")
	})
}
