package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/cotizador/backend/internal/domain/identity"
	"github.com/cotizador/backend/internal/infrastructure/auth"
	"github.com/cotizador/backend/internal/infrastructure/config"
	"github.com/cotizador/backend/internal/infrastructure/logger"
	"github.com/cotizador/backend/internal/interfaces/http/handler"
	"github.com/cotizador/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the endpoint handlers wired by the router
type Handlers struct {
	Auth       *handler.AuthHandler
	Client     *handler.ClientHandler
	Product    *handler.ProductHandler
	Attachment *handler.AttachmentHandler
	Quote      *handler.QuoteHandler
}

// Dependencies carries the cross-cutting services the middleware needs
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	UserRepo   identity.UserRepository
}

// New builds the gin engine with all middleware and routes registered
func New(deps Dependencies, handlers Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: deps.Config.HTTP.CORSAllowOrigins,
		AllowMethods: deps.Config.HTTP.CORSAllowMethods,
		AllowHeaders: deps.Config.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))
	engine.Use(otelgin.Middleware("cotizador-backend"))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticate := middleware.Authenticate(deps.JWTService, deps.UserRepo)
	adminOnly := middleware.RequireAdmin()

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/logout", handlers.Auth.Logout)
		authGroup.GET("/me", authenticate, handlers.Auth.Me)
		authGroup.POST("/change-password", authenticate, handlers.Auth.ChangePassword)

		users := authGroup.Group("", authenticate, adminOnly)
		users.POST("/register", handlers.Auth.Register)
		users.GET("/users", handlers.Auth.ListUsers)
		users.POST("/users/toggle-active/:id", handlers.Auth.ToggleUserActive)
	}

	clientGroup := engine.Group("/client", authenticate)
	{
		clientGroup.POST("", handlers.Client.Create)
		clientGroup.GET("", handlers.Client.List)
		clientGroup.GET("/:id", handlers.Client.Get)
		clientGroup.PUT("/:id", handlers.Client.Update)
		clientGroup.POST("/toggle-active/:id", handlers.Client.ToggleActive)
		clientGroup.POST("/:id/emails", handlers.Client.AddEmail)
		clientGroup.DELETE("/:id/emails", handlers.Client.RemoveEmail)
	}

	productGroup := engine.Group("/product", authenticate)
	{
		productGroup.POST("", handlers.Product.Create)
		productGroup.GET("", handlers.Product.List)
		productGroup.GET("/:id", handlers.Product.Get)
		productGroup.PUT("/:id", handlers.Product.Update)
		productGroup.POST("/toggle-active/:id", handlers.Product.ToggleActive)
	}

	attachmentGroup := engine.Group("/quote-attachment", authenticate)
	{
		attachmentGroup.POST("", handlers.Attachment.Create)
		attachmentGroup.GET("", handlers.Attachment.List)
		attachmentGroup.GET("/:id", handlers.Attachment.Get)
		attachmentGroup.GET("/download/:id", handlers.Attachment.Download)
		attachmentGroup.PUT("/:id", handlers.Attachment.Update)
		attachmentGroup.POST("/toggle-active/:id", handlers.Attachment.ToggleActive)
		attachmentGroup.DELETE("/:id", adminOnly, handlers.Attachment.Delete)
	}

	quoteGroup := engine.Group("/quote", authenticate)
	{
		quoteGroup.POST("", handlers.Quote.Create)
		quoteGroup.GET("", handlers.Quote.List)
		quoteGroup.GET("/generate-pdf/:id", handlers.Quote.GeneratePDF)
		quoteGroup.POST("/send-quote-email", handlers.Quote.SendEmail)
		quoteGroup.POST("/update-status/:id", handlers.Quote.UpdateStatus)
		quoteGroup.GET("/:id", handlers.Quote.Get)
		quoteGroup.PUT("/:id", handlers.Quote.Update)
		quoteGroup.DELETE("/:id", adminOnly, handlers.Quote.Delete)
		quoteGroup.PUT("/:id/items/:itemId", handlers.Quote.UpdateLineItem)
		quoteGroup.DELETE("/:id/items/:itemId", handlers.Quote.DeleteLineItem)
	}

	return engine
}
