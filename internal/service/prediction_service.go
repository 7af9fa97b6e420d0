package service

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/scorecast-go-api/internal/dto"
	"github.com/noah-isme/scorecast-go-api/pkg/pipeline"
)

// PredictionService turns a raw form payload into a rounded score.
type PredictionService interface {
	Predict(ctx context.Context, payload dto.PredictRequest) (dto.PredictionResponse, error)
}

type predictionService struct {
	predictor pipeline.Predictor
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewPredictionService constructs a PredictionService backed by the given
// predictor. The predictor is expected to hold its artifacts loaded; the
// service never reconstructs it per request.
func NewPredictionService(predictor pipeline.Predictor, validate *validator.Validate, logger zerolog.Logger) PredictionService {
	return &predictionService{
		predictor: predictor,
		validator: validate,
		logger:    logger.With().Str("component", "prediction_service").Logger(),
	}
}

func (s *predictionService) Predict(ctx context.Context, payload dto.PredictRequest) (dto.PredictionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PredictionResponse{}, err
	}

	record, err := payload.Record()
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	frame, err := buildFrame(record)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	results, err := s.predictor.Predict(ctx, frame)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("pipeline predict: %w", err)
	}

	if len(results) != 1 {
		return dto.PredictionResponse{}, fmt.Errorf("pipeline returned %d predictions for one row", len(results))
	}

	score := roundScore(results[0])
	s.logger.Debug().Float64("score", score).Msg("prediction computed")

	return dto.PredictionResponse{Score: score}, nil
}

// buildFrame assembles the single-row feature frame in the training-time
// column order. The order is a frozen contract, never derived from input.
func buildFrame(record dto.StudentRecord) (pipeline.Frame, error) {
	return pipeline.NewFrame(pipeline.Columns(), []interface{}{
		record.Gender,
		record.RaceEthnicity,
		record.ParentalLevelOfEducation,
		record.Lunch,
		record.TestPreparationCourse,
		record.ReadingScore,
		record.WritingScore,
	})
}

// roundScore rounds half away from zero to two decimal places.
func roundScore(raw float64) float64 {
	return math.Round(raw*100) / 100
}
