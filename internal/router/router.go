package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/scorecast-go-api/internal/config"
	"github.com/noah-isme/scorecast-go-api/internal/handler"
	"github.com/noah-isme/scorecast-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PredictHandler *handler.PredictHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/healthz", handler.HealthCheck(cfg))
	app.Get("/debug", handler.Debug())
	app.Get("/metrics", observability.MetricsHandler())

	if deps.PredictHandler != nil {
		deps.PredictHandler.Register(app)
	}
}
