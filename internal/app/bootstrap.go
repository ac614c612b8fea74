package app

import (
	"fmt"
	"strings"

	"internmatch/internal/config"
	"internmatch/internal/delivery/http/handler"
	"internmatch/internal/delivery/http/middleware"
	"internmatch/internal/delivery/http/routes"
	"internmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app, and starts the
// websocket hub. The returned cleanup closes the container.
func Bootstrap(cfg config.Config, c *Container) (*App, func() error, error) {
	app := New(cfg, c)
	go c.Hub.Run()
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis, c.Model),
		handler.NewRecommendationHandler(c.RecommendationUC),
		handler.NewInternshipHandler(c.PostingListUC),
		handler.NewReferenceHandler(c.ReferenceUC),
		handler.NewModelHandler(c.TrainingUC),
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(app)
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
