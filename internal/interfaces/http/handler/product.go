package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/cotizador/backend/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /product
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// List handles GET /product
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.BaseHandler.List(c, products, len(products))
}

// Get handles GET /product/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Update handles PUT /product/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// ToggleActive handles POST /product/toggle-active/:id
func (h *ProductHandler) ToggleActive(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.ToggleProductActive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}
