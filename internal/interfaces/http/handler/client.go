package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/cotizador/backend/internal/application/catalog"
)

// ClientHandler handles client catalog endpoints
type ClientHandler struct {
	BaseHandler
	clientService *appcatalog.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *appcatalog.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create handles POST /client
func (h *ClientHandler) Create(c *gin.Context) {
	var req appcatalog.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, client)
}

// List handles GET /client. By default only active clients are returned;
// pass includeInactive=true to list everything.
func (h *ClientHandler) List(c *gin.Context) {
	search := c.Query("search")
	activeOnly := c.Query("includeInactive") != "true"

	clients, err := h.clientService.ListClients(c.Request.Context(), search, activeOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.BaseHandler.List(c, clients, len(clients))
}

// Get handles GET /client/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Update handles PUT /client/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// ToggleActive handles POST /client/toggle-active/:id
func (h *ClientHandler) ToggleActive(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.ToggleClientActive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// AddEmail handles POST /client/:id/emails
func (h *ClientHandler) AddEmail(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.ClientEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	client, err := h.clientService.AddClientEmail(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// RemoveEmail handles DELETE /client/:id/emails
func (h *ClientHandler) RemoveEmail(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.ClientEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.clientService.RemoveClientEmail(c.Request.Context(), id, req.Email); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
