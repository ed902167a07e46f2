package routes

import (
	"skill-passport/internal/delivery/http/handler"
	"skill-passport/internal/delivery/http/middleware"
	v1 "skill-passport/internal/delivery/http/routes/v1"
	"skill-passport/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	auth   *middleware.AuthMiddleware
	v1     v1.Handlers
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, auth *middleware.AuthMiddleware, v1Handlers v1.Handlers) *Registry {
	return &Registry{health: health, ws: wsHandler, auth: auth, v1: v1Handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws", r.ws.HandleProfilesWS)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	var group fiber.Router
	if r.auth != nil {
		group = api.Group("/v1", r.auth.Middleware())
	} else {
		group = api.Group("/v1")
	}
	RegisterV1(group, r.v1)
}
