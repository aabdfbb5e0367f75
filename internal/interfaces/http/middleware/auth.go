package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cotizador/backend/internal/domain/identity"
	"github.com/cotizador/backend/internal/infrastructure/auth"
	"github.com/cotizador/backend/internal/interfaces/http/dto"
)

const (
	// AuthorizationHeader is the header containing the JWT token
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for Bearer tokens
	BearerPrefix = "Bearer "

	identityKey = "current_identity"
)

// Identity carries the authenticated caller through the request context.
// It is populated once by Authenticate and must not be mutated by handlers.
type Identity struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}

// Authenticate validates the Bearer token and loads the account behind it.
// Requests with a missing, malformed, or expired token are rejected, as are
// tokens whose account no longer exists or has been deactivated.
func Authenticate(jwtService *auth.JWTService, userRepo identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil || !user.CanLogin() {
			abortUnauthorized(c, "Account is not active")
			return
		}

		c.Set(identityKey, Identity{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		})
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated identity lacks the
// admin flag. It must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !ident.IsAdmin {
			requestID, _ := c.Get("request_id")
			requestIDStr, _ := requestID.(string)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"Administrator privileges required",
				requestIDStr,
			))
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated identity set by Authenticate.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := value.(Identity)
	return ident, ok
}

func extractBearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(AuthorizationHeader)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID, _ := c.Get("request_id")
	requestIDStr, _ := requestID.(string)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.ErrCodeUnauthorized,
		message,
		requestIDStr,
	))
}
