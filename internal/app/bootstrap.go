package app

import (
	"context"
	"fmt"
	"strings"

	"skill-passport/internal/config"
	"skill-passport/internal/delivery/http/handler"
	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/delivery/http/routes"
	v1 "skill-passport/internal/delivery/http/routes/v1"
	"skill-passport/internal/pkg/jwt"
	"skill-passport/internal/usecase"
	"skill-passport/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// New wires the HTTP application on top of an existing container.
func New(c *Container, hub *ws.Hub) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	var authMw *middleware.AuthMiddleware
	if cfg.AuthEnabled() {
		authMw = middleware.NewAuthMiddleware(jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn))
	}

	checks := map[string]handler.Pinger{}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	mergeUC := usecase.NewProfileMergeUsecase(c.Sources, c.Merged, ws.NewNotifier(hub), c.Logger)
	matchingUC := usecase.NewMatchingUsecase(c.Merged, c.Sources, c.Jobs, c.Embedder, cfg.Embedding.Timeout, c.Logger)
	statsUC := usecase.NewStatsUsecase(c.Progress, c.Sources, c.Logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		ws.NewHandler(hub, c.Logger),
		authMw,
		v1.Handlers{
			Profile: handler.NewProfileHandler(mergeUC),
			Match:   handler.NewMatchHandler(matchingUC),
			Stats:   handler.NewStatsHandler(statsUC),
		},
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap builds the container, starts the websocket hub and wires the
// HTTP application. cleanup stops the hub and releases the container.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(c.Logger)
	go hub.Run(hubCtx)

	app := New(c, hub)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(log)
	accessMw := middleware.NewAccessLogMiddleware(log)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
