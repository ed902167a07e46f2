package handler

import (
	"context"
	"time"

	"skill-passport/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler reports the named checks. Any failing check turns the
// response into 503.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	out := map[string]string{}
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			out[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		out[name] = "ok"
	}

	if status != fiber.StatusOK {
		return response.JSON(c, status, response.MessageServiceUnavailable, out)
	}
	return response.JSON(c, status, response.MessageOK, out)
}
