package app

import (
	"fmt"
	"strings"

	"career-hub/internal/config"
	"career-hub/internal/delivery/http/handler"
	"career-hub/internal/delivery/http/middleware"
	"career-hub/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	handler.NewHealthHandler(c.DB, c.Cache).RegisterRoutes(f)

	api := f.Group("/api")
	routes.RegisterV1(api.Group("/v1"), c.Config, c.DB, c.Cache, c.Hub, c.Policy, c.Logger)
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
