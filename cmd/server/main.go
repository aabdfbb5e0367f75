package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcatalog "github.com/cotizador/backend/internal/application/catalog"
	appidentity "github.com/cotizador/backend/internal/application/identity"
	appnotification "github.com/cotizador/backend/internal/application/notification"
	appquote "github.com/cotizador/backend/internal/application/quote"
	"github.com/cotizador/backend/internal/infrastructure/auth"
	"github.com/cotizador/backend/internal/infrastructure/config"
	"github.com/cotizador/backend/internal/infrastructure/logger"
	"github.com/cotizador/backend/internal/infrastructure/mail"
	"github.com/cotizador/backend/internal/infrastructure/pdf"
	"github.com/cotizador/backend/internal/infrastructure/persistence"
	"github.com/cotizador/backend/internal/infrastructure/storage"
	"github.com/cotizador/backend/internal/infrastructure/telemetry"
	"github.com/cotizador/backend/internal/interfaces/http/handler"
	"github.com/cotizador/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting cotizador backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.Enabled, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected")

	fileStore, err := newFileStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	mailer, err := mail.NewSMTPMailer(&cfg.Mail)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)
	renderer := pdf.NewRenderer()

	authService := appidentity.NewAuthService(userRepo, jwtService)
	clientService := appcatalog.NewClientService(clientRepo)
	productService := appcatalog.NewProductService(productRepo)
	attachmentService := appcatalog.NewAttachmentService(attachmentRepo, fileStore)
	quoteService := appquote.NewQuoteService(quoteRepo, clientRepo, productRepo)
	quoteMailer := appnotification.NewQuoteMailer(quoteRepo, attachmentRepo, fileStore, renderer, mailer)

	engine := router.New(
		router.Dependencies{
			Config:     cfg,
			Logger:     log,
			JWTService: jwtService,
			UserRepo:   userRepo,
		},
		router.Handlers{
			Auth:       handler.NewAuthHandler(authService),
			Client:     handler.NewClientHandler(clientService),
			Product:    handler.NewProductHandler(productService),
			Attachment: handler.NewAttachmentHandler(attachmentService),
			Quote:      handler.NewQuoteHandler(quoteService, renderer, quoteMailer),
		},
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracing", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func newFileStore(cfg *config.Config) (appcatalog.FileStore, error) {
	if cfg.Storage.Driver == "s3" {
		return storage.NewS3FileStore(&cfg.Storage)
	}
	return storage.NewLocalFileStore(cfg.Storage.BasePath)
}
