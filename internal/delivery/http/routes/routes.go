package routes

import (
	"log"

	"skill-ready/internal/config"
	"skill-ready/internal/database"
	"skill-ready/internal/delivery/http/handler"
	"skill-ready/internal/infrastructure/cache"
	"skill-ready/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	registerHealth(app, deps)
	registerWS(app, deps)

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), deps)
}

func registerHealth(app *fiber.App, deps Deps) {
	handler.NewHealthHandler(deps.DB).RegisterRoutes(app)
}

func registerWS(app *fiber.App, deps Deps) {
	if deps.Hub == nil {
		return
	}
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
	app.Get("/ws/readiness", wsHandler.HandleReadinessWS)
}
