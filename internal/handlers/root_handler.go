package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RootHandler serves the unauthenticated greeting and health routes.
type RootHandler struct {
	ping func() error // nil when no database is configured
}

// NewRootHandler creates a new RootHandler. ping checks the database; it may be nil.
func NewRootHandler(ping func() error) *RootHandler {
	return &RootHandler{ping: ping}
}

// RegisterRoutes registers the root routes.
func (h *RootHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHello)
	router.Get("/health", h.HandleHealth)
}

// HandleHello greets the caller.
func (h *RootHandler) HandleHello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": "Hello"})
}

// HandleHealth reports whether the service and its database are reachable.
func (h *RootHandler) HandleHealth(c *fiber.Ctx) error {
	database := "memory"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			zap.L().Warn("health check: database unreachable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "unreachable",
			})
		}
		database = "connected"
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
