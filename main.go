package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"notes/internal/config"
	"notes/internal/database"
	"notes/internal/handlers"
	"notes/internal/middleware"
	"notes/internal/repositories"
	"notes/internal/services"
	"notes/pkg/logger"
	"notes/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	app, cleanup, err := newApp(cfg)
	if err != nil {
		zlog.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer cleanup()

	// --- Start HTTP Server ---
	zlog.Info("Starting server", zap.String("port", cfg.Port), zap.String("db_driver", cfg.DBDriver))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	zlog.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		zlog.Error("Error during Fiber shutdown", zap.Error(err))
	}

	zlog.Info("Server gracefully stopped")
}

// newApp wires the stores, services and handlers selected by cfg. The returned
// cleanup function releases the database and broker connections.
func newApp(cfg *config.Config) (*fiber.App, func(), error) {
	var (
		userRepo repositories.UserRepository
		noteRepo repositories.NoteRepository
		ping     func() error
		closers  []func() error
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				zap.L().Warn("Error during cleanup", zap.Error(err))
			}
		}
	}

	// --- Initialize Repositories ---
	if cfg.DBDriver == database.DriverMemory {
		userRepo = repositories.NewInMemoryUserRepository()
		noteRepo = repositories.NewInMemoryNoteRepository()
	} else {
		db, err := database.Connect(cfg.DBDriver, cfg.DatabaseDSN, cfg.ConnectAttempts, cfg.ConnectDelay)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() error { return database.Close(db) })
		if err := database.Migrate(db); err != nil {
			cleanup()
			return nil, nil, err
		}
		userRepo = repositories.NewGORMUserRepository(db)
		noteRepo = repositories.NewGORMNoteRepository(db)
		ping = func() error { return database.Ping(db) }
	}

	// --- Initialize RabbitMQ Client ---
	// Note events are optional; the service runs without a broker.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:             cfg.RabbitMQURL,
			Exchanges:       []string{services.NotesExchange},
			ConnectAttempts: cfg.ConnectAttempts,
			RetryDelay:      cfg.ConnectDelay,
		})
		if err != nil {
			zap.L().Warn("RabbitMQ unavailable, note events disabled", zap.Error(err))
		} else {
			publisher = mqClient
			closers = append(closers, mqClient.Close)
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	noteService := services.NewNoteService(noteRepo, publisher)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{AppName: "notes"})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New()) // Request logger
	app.Use(cors.New())        // All origins

	// --- Routes ---
	auth := middleware.AuthRequired(authService)
	handlers.NewRootHandler(ping).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app, auth)
	handlers.NewNoteHandler(noteService).RegisterRoutes(app, auth)

	return app, cleanup, nil
}
