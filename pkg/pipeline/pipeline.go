package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

var (
	predictDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scorecast",
		Subsystem: "pipeline",
		Name:      "predict_duration_seconds",
		Help:      "Duration of model inference calls",
	})

	predictFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "scorecast",
		Subsystem: "pipeline",
		Name:      "predict_failures_total",
		Help:      "Number of failed model inference calls",
	})
)

// Predictor runs the trained preprocessing+regression pipeline over a feature
// frame and returns one prediction per row.
type Predictor interface {
	Predict(ctx context.Context, frame Frame) ([]float64, error)
}

// Config defines how the serialized pipeline artifacts are loaded.
type Config struct {
	ArtifactPath string
	Logger       zerolog.Logger
}

// artifact mirrors the on-disk JSON bundle produced by the training job.
type artifact struct {
	Version   int                     `json:"version"`
	Columns   []string                `json:"columns"`
	Encoder   map[string][]string     `json:"encoder"`
	Scaler    map[string]scalerParams `json:"scaler"`
	Model     modelParams             `json:"model"`
	TrainedAt string                  `json:"trained_at,omitempty"`
}

type scalerParams struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

type modelParams struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// LinearPipeline applies a one-hot encoder and standard scaler, then a linear
// regression. All state is read-only after Load, so a single instance is safe
// for concurrent Predict calls.
type LinearPipeline struct {
	columns   []string
	encoder   map[string][]string
	scaler    map[string]scalerParams
	weights   *mat.VecDense
	intercept float64
	logger    zerolog.Logger
}

// Load reads the serialized preprocessing and model artifacts once. The
// returned pipeline is meant to be constructed at startup and shared; loading
// per request repeats the artifact I/O for no benefit.
func Load(cfg Config) (*LinearPipeline, error) {
	if cfg.ArtifactPath == "" {
		return nil, fmt.Errorf("pipeline artifact path is required")
	}

	raw, err := os.ReadFile(cfg.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("read pipeline artifact: %w", err)
	}

	var bundle artifact
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("decode pipeline artifact: %w", err)
	}

	if len(bundle.Columns) == 0 {
		return nil, fmt.Errorf("pipeline artifact declares no columns")
	}

	width := 0
	for _, column := range bundle.Columns {
		if categories, ok := bundle.Encoder[column]; ok {
			if len(categories) == 0 {
				return nil, fmt.Errorf("encoder for column %q has no categories", column)
			}
			width += len(categories)
			continue
		}
		if _, ok := bundle.Scaler[column]; !ok {
			return nil, fmt.Errorf("column %q has neither encoder nor scaler parameters", column)
		}
		width++
	}

	if len(bundle.Model.Weights) != width {
		return nil, fmt.Errorf("model has %d weights for %d encoded features", len(bundle.Model.Weights), width)
	}

	for column, params := range bundle.Scaler {
		if params.Scale == 0 {
			return nil, fmt.Errorf("scaler for column %q has zero scale", column)
		}
	}

	logger := cfg.Logger.With().Str("component", "linear_pipeline").Logger()
	logger.Info().
		Str("artifact", cfg.ArtifactPath).
		Int("columns", len(bundle.Columns)).
		Int("encoded_width", width).
		Msg("pipeline artifacts loaded")

	return &LinearPipeline{
		columns:   bundle.Columns,
		encoder:   bundle.Encoder,
		scaler:    bundle.Scaler,
		weights:   mat.NewVecDense(width, bundle.Model.Weights),
		intercept: bundle.Model.Intercept,
		logger:    logger,
	}, nil
}

// Columns returns the column order the loaded artifacts were trained with.
func (p *LinearPipeline) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Predict encodes the frame and evaluates the linear model. The frame's
// column set and order must exactly match the training-time schema.
func (p *LinearPipeline) Predict(ctx context.Context, frame Frame) ([]float64, error) {
	start := time.Now()

	prediction, err := p.predict(ctx, frame)
	predictDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		predictFailures.Inc()
		return nil, err
	}

	return []float64{prediction}, nil
}

func (p *LinearPipeline) predict(ctx context.Context, frame Frame) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := p.checkColumns(frame); err != nil {
		return 0, err
	}

	features, err := p.encode(frame)
	if err != nil {
		return 0, err
	}

	vec := mat.NewVecDense(len(features), features)
	return mat.Dot(p.weights, vec) + p.intercept, nil
}

func (p *LinearPipeline) checkColumns(frame Frame) error {
	columns := frame.Columns()
	if len(columns) != len(p.columns) {
		return fmt.Errorf("frame has %d columns, pipeline expects %d", len(columns), len(p.columns))
	}
	for i, column := range p.columns {
		if columns[i] != column {
			return fmt.Errorf("frame column %d is %q, pipeline expects %q", i, columns[i], column)
		}
	}
	return nil
}

// encode flattens the frame into the scaled one-hot vector the weights were
// fit against: categorical columns expand to their category indicator block,
// numeric columns are standardized.
func (p *LinearPipeline) encode(frame Frame) ([]float64, error) {
	features := make([]float64, 0, p.weights.Len())

	for _, column := range p.columns {
		if categories, ok := p.encoder[column]; ok {
			value, err := frame.String(column)
			if err != nil {
				return nil, err
			}

			block := make([]float64, len(categories))
			matched := false
			for i, category := range categories {
				if value == category {
					block[i] = 1
					matched = true
					break
				}
			}
			if !matched {
				return nil, fmt.Errorf("unknown category %q for column %q", value, column)
			}

			features = append(features, block...)
			continue
		}

		params := p.scaler[column]
		value, err := frame.Float(column)
		if err != nil {
			return nil, err
		}
		features = append(features, (value-params.Mean)/params.Scale)
	}

	return features, nil
}
