package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/scorecast-go-api/internal/config"
	"github.com/noah-isme/scorecast-go-api/internal/handler"
	"github.com/noah-isme/scorecast-go-api/internal/middleware"
	"github.com/noah-isme/scorecast-go-api/internal/router"
	"github.com/noah-isme/scorecast-go-api/internal/service"
	"github.com/noah-isme/scorecast-go-api/internal/web"
	"github.com/noah-isme/scorecast-go-api/pkg/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Artifacts are loaded exactly once here and shared read-only across
	// requests; the handler never reconstructs the pipeline.
	predictor, err := pipeline.Load(pipeline.Config{
		ArtifactPath: cfg.ModelArtifactPath,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to load prediction pipeline: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("failed to initialise page renderer: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	predictionService := service.NewPredictionService(predictor, validate, logger)
	predictHandler := handler.NewPredictHandler(predictionService, renderer, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		PredictHandler: predictHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
