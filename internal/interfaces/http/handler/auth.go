package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/cotizador/backend/internal/application/identity"
)

// AuthHandler handles authentication and user management endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout is a
// client-side discard; the endpoint exists so clients have a uniform flow.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Success(c, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := h.getIdentity(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), ident.UserID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// ListUsers handles GET /auth/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.List(c, users, len(users))
}

// ToggleUserActive handles POST /auth/users/toggle-active/:id
func (h *AuthHandler) ToggleUserActive(c *gin.Context) {
	ident, ok := h.getIdentity(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.authService.ToggleUserActive(c.Request.Context(), id, ident.UserID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ident, ok := h.getIdentity(c)
	if !ok {
		return
	}

	var req appidentity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), ident.UserID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password updated"})
}
