package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/scorecast-go-api/internal/dto"
	"github.com/noah-isme/scorecast-go-api/internal/service"
	"github.com/noah-isme/scorecast-go-api/internal/web"
)

// genericPredictionError is the only failure text a client ever sees.
// Internal detail stays in the server log.
const genericPredictionError = "An error occurred during prediction. Please check your inputs."

// PredictHandler serves the score form and the prediction submission.
type PredictHandler struct {
	service  service.PredictionService
	renderer *web.Renderer
	logger   zerolog.Logger
}

// NewPredictHandler builds a predict handler instance.
func NewPredictHandler(service service.PredictionService, renderer *web.Renderer, logger zerolog.Logger) *PredictHandler {
	return &PredictHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.With().Str("component", "predict_handler").Logger(),
	}
}

// Register attaches the routes to the provided router.
func (h *PredictHandler) Register(router fiber.Router) {
	router.Get("/", h.form)
	router.Get("/predict", h.form)
	router.Post("/predict", h.predict)
}

// form renders the input page. It never touches the prediction stack.
func (h *PredictHandler) form(c *fiber.Ctx) error {
	return h.renderer.Form(c)
}

func (h *PredictHandler) predict(c *fiber.Ctx) error {
	var payload dto.PredictRequest
	if err := c.BodyParser(&payload); err != nil {
		return h.fail(c, err)
	}

	result, err := h.service.Predict(c.Context(), payload)
	if err != nil {
		return h.fail(c, err)
	}

	return h.renderer.Result(c, result.Display())
}

// fail is the single containment boundary: every normalizer, frame builder,
// and pipeline error collapses into one generic message rendered at 200, so a
// failed prediction never leaks internals or looks like a server crash.
func (h *PredictHandler) fail(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Warn().Err(err).Msg("prediction failed")
	return h.renderer.Error(c, genericPredictionError)
}
