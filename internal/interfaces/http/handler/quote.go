package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appnotification "github.com/cotizador/backend/internal/application/notification"
	appquote "github.com/cotizador/backend/internal/application/quote"
	"github.com/cotizador/backend/internal/domain/shared"
)

// QuoteHandler handles quote lifecycle endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *appquote.QuoteService
	renderer     appnotification.QuoteRenderer
	quoteMailer  *appnotification.QuoteMailer
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(
	quoteService *appquote.QuoteService,
	renderer appnotification.QuoteRenderer,
	quoteMailer *appnotification.QuoteMailer,
) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		renderer:     renderer,
		quoteMailer:  quoteMailer,
	}
}

// Create handles POST /quote
func (h *QuoteHandler) Create(c *gin.Context) {
	ident, ok := h.getIdentity(c)
	if !ok {
		return
	}

	var req appquote.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), ident.Username, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quote)
}

// List handles GET /quote?showState=&search=
func (h *QuoteHandler) List(c *gin.Context) {
	var req appquote.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.BaseHandler.List(c, quotes, len(quotes))
}

// Get handles GET /quote/:id
func (h *QuoteHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.quoteService.GetQuoteDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, detail)
}

// Update handles PUT /quote/:id
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appquote.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// UpdateStatus handles POST /quote/update-status/:id
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appquote.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.quoteService.SetQuoteStatus(c.Request.Context(), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Status updated"})
}

// Delete handles DELETE /quote/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UpdateLineItem handles PUT /quote/:id/items/:itemId
func (h *QuoteHandler) UpdateLineItem(c *gin.Context) {
	quoteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req appquote.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.quoteService.UpdateLineItem(c.Request.Context(), quoteID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteLineItem handles DELETE /quote/:id/items/:itemId
func (h *QuoteHandler) DeleteLineItem(c *gin.Context) {
	quoteID, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	if err := h.quoteService.DeleteLineItem(c.Request.Context(), quoteID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GeneratePDF handles GET /quote/generate-pdf/:id. The same quote always
// renders to the same bytes, so responses are safe to cache by content.
func (h *QuoteHandler) GeneratePDF(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	detail, err := h.quoteService.GetQuoteDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	content, err := h.renderer.RenderQuote(detail)
	if err != nil {
		h.HandleDomainError(c, shared.ErrRenderFailed)
		return
	}

	filename := fmt.Sprintf("cotizacion_%d.pdf", detail.Number)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}

// SendEmail handles POST /quote/send-quote-email
func (h *QuoteHandler) SendEmail(c *gin.Context) {
	var req appnotification.SendQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.quoteMailer.SendQuoteEmail(c.Request.Context(), req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Quote email sent"})
}
