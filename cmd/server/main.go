package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/plutopets/pluto-backend/internal/config"
	"github.com/plutopets/pluto-backend/internal/database"
	"github.com/plutopets/pluto-backend/internal/filehost"
	"github.com/plutopets/pluto-backend/internal/handlers"
	"github.com/plutopets/pluto-backend/internal/logging"
	"github.com/plutopets/pluto-backend/internal/mailer"
	"github.com/plutopets/pluto-backend/internal/middleware"
	"github.com/plutopets/pluto-backend/internal/modules"
	"github.com/plutopets/pluto-backend/internal/modules/assistant"
	"github.com/plutopets/pluto-backend/internal/modules/clinical"
	"github.com/plutopets/pluto-backend/internal/modules/dailycare"
	"github.com/plutopets/pluto-backend/internal/modules/documents"
	"github.com/plutopets/pluto-backend/internal/modules/journal"
	"github.com/plutopets/pluto-backend/internal/modules/pets"
	"github.com/plutopets/pluto-backend/internal/modules/records"
	"github.com/plutopets/pluto-backend/internal/routes"
	"github.com/plutopets/pluto-backend/internal/services"
	"github.com/plutopets/pluto-backend/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Fallback store for documents, daily care and clinical sub-resources
	st, err := store.NewByBackend(cfg.StorageBackend, cfg.StoragePath, database.DB)
	if err != nil {
		slog.Error("store init failed", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	if gs, ok := st.(*store.GormStore); ok {
		if err := database.MigrateModels(gs.Models()); err != nil {
			slog.Error("store migration failed", "error", err)
			os.Exit(1)
		}
	}

	// Domain services
	petsService := pets.NewService(database.DB)
	journalService := journal.NewService(journal.NewGormRepository(database.DB))
	dailycareService := dailycare.NewService(st)
	filehostClient := filehost.NewClient(cfg.FileHostURL, cfg.FileHostPrivateKey, cfg.FileHostTimeout)
	documentsService := documents.NewService(st, filehostClient, cfg.FileHostUploadURL)
	clinicalService := clinical.NewService(st, func(doctorID string) string {
		id, err := uuid.Parse(doctorID)
		if err != nil {
			return ""
		}
		profile, err := petsService.GetDoctorProfile(id)
		if err != nil {
			return ""
		}
		return profile.Name
	})
	recordsService := records.NewService(petsService, journalService, dailycareService, documentsService, clinicalService)
	router := assistant.NewKeywordRouter(cfg.AIModel, cfg.AISearchModel)
	assistantService := assistant.NewService(cfg, router, petsService, journalService, documentsService)

	mail := mailer.New(cfg)
	authService := services.NewAuthService(database.DB, cfg, mail, petsService, journalService)

	// Register plugins
	plugins := []modules.Plugin{
		pets.New(petsService),
		journal.New(journalService),
		dailycare.New(dailycareService),
		documents.New(documentsService),
		clinical.New(clinicalService),
		records.New(recordsService),
		assistant.New(assistantService),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, authHandler, healthHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
