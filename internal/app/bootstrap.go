package app

import (
	"fmt"
	"strings"

	"skill-ready/internal/config"
	"skill-ready/internal/delivery/http/middleware"
	"skill-ready/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{})

	registerGlobalMiddleware(f, c)
	routes.Register(f, routes.Deps{
		Config: c.Config,
		DB:     c.DB,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Logger: c.Logger,
	})

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	go container.Hub.Run()

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware()
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
