package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	serviceName = "macromatch-go-api"
	Version     = "1.0.0"
)

// ReadinessCheck is one dependency probed by /health/ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	startTime time.Time
	checks    []ReadinessCheck
}

func NewHealthHandler(checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		checks:    checks,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": serviceName,
		"version": Version,
		"uptime":  time.Since(h.startTime).String(),
		"time":    time.Now(),
	})
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", fiber.StatusOK
	checks := fiber.Map{"api": "ok"}
	for _, rc := range h.checks {
		if err := rc.Check(ctx); err != nil {
			checks[rc.Name] = err.Error()
			status, code = "degraded", fiber.StatusServiceUnavailable
			continue
		}
		checks[rc.Name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}
