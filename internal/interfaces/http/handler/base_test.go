package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizador/backend/internal/domain/shared"
	"github.com/cotizador/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-id")
		c.Request.Header.Set("X-Request-ID", "header-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when absent", func(t *testing.T) {
		c, _ := newTestContext(t)
		assert.Equal(t, "", getRequestID(c))
	})
}

func TestHandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "duplicate"), http.StatusConflict, "ALREADY_EXISTS"},
		{"invalid input", shared.NewDomainError("INVALID_PRICE", "negative price"), http.StatusBadRequest, "INVALID_PRICE"},
		{"render failure", shared.ErrRenderFailed, http.StatusInternalServerError, "RENDER_FAILED"},
		{"unknown error type", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid uuid", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "7a1e6d2c-6f5b-4f0e-9a3d-2b8c1d4e5f60"}}

		id, ok := h.parseIDParam(c)
		assert.True(t, ok)
		assert.Equal(t, "7a1e6d2c-6f5b-4f0e-9a3d-2b8c1d4e5f60", id.String())
	})

	t.Run("malformed uuid", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, ok := h.parseIDParam(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
