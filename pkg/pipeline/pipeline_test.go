package pipeline_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scorecast-go-api/pkg/pipeline"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func loadTestPipeline(t *testing.T) *pipeline.LinearPipeline {
	t.Helper()

	p, err := pipeline.Load(pipeline.Config{
		ArtifactPath: filepath.Join("testdata", "model.json"),
		Logger:       testLogger(),
	})
	require.NoError(t, err)
	return p
}

func frameFromValues(t *testing.T, values []interface{}) pipeline.Frame {
	t.Helper()

	frame, err := pipeline.NewFrame(pipeline.Columns(), values)
	require.NoError(t, err)
	return frame
}

func TestLoadExposesTrainingColumns(t *testing.T) {
	p := loadTestPipeline(t)
	require.Equal(t, pipeline.Columns(), p.Columns())
}

func TestPredictLinearScore(t *testing.T) {
	p := loadTestPipeline(t)

	// male=2, group B=-1, high school=0, standard=1, none=0,
	// reading (60-50)/10*5=5, writing (70-50)/10*10=20, intercept 50.
	frame := frameFromValues(t, []interface{}{
		"male", "group B", "high school", "standard", "none", 60.0, 70.0,
	})

	results, err := p.Predict(context.Background(), frame)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.InDelta(t, 77.0, results[0], 1e-9)
}

func TestPredictBaseline(t *testing.T) {
	p := loadTestPipeline(t)

	frame := frameFromValues(t, []interface{}{
		"female", "group A", "bachelor's degree", "free/reduced", "completed", 50.0, 50.0,
	})

	results, err := p.Predict(context.Background(), frame)
	require.NoError(t, err)
	require.InDelta(t, 56.0, results[0], 1e-9)
}

func TestPredictIsDeterministic(t *testing.T) {
	p := loadTestPipeline(t)

	frame := frameFromValues(t, []interface{}{
		"male", "group B", "high school", "standard", "none", 63.0, 71.0,
	})

	first, err := p.Predict(context.Background(), frame)
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), frame)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPredictRejectsUnknownCategory(t *testing.T) {
	p := loadTestPipeline(t)

	frame := frameFromValues(t, []interface{}{
		"male", "group Z", "high school", "standard", "none", 60.0, 70.0,
	})

	_, err := p.Predict(context.Background(), frame)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown category")
}

func TestPredictRejectsColumnMismatch(t *testing.T) {
	p := loadTestPipeline(t)

	frame, err := pipeline.NewFrame([]string{"gender"}, []interface{}{"male"})
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), frame)
	require.Error(t, err)
}

func TestPredictRejectsReorderedColumns(t *testing.T) {
	p := loadTestPipeline(t)

	columns := pipeline.Columns()
	columns[0], columns[1] = columns[1], columns[0]
	frame, err := pipeline.NewFrame(columns, []interface{}{
		"group B", "male", "high school", "standard", "none", 60.0, 70.0,
	})
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), frame)
	require.Error(t, err)
}

func TestPredictRejectsWrongCellType(t *testing.T) {
	p := loadTestPipeline(t)

	frame := frameFromValues(t, []interface{}{
		"male", "group B", "high school", "standard", "none", "sixty", 70.0,
	})

	_, err := p.Predict(context.Background(), frame)
	require.Error(t, err)
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := pipeline.Load(pipeline.Config{
		ArtifactPath: filepath.Join(t.TempDir(), "absent.json"),
		Logger:       testLogger(),
	})
	require.Error(t, err)
}

func TestLoadRequiresArtifactPath(t *testing.T) {
	_, err := pipeline.Load(pipeline.Config{Logger: testLogger()})
	require.Error(t, err)
}

func TestLoadRejectsWeightWidthMismatch(t *testing.T) {
	path := writeArtifact(t, `{
		"version": 1,
		"columns": ["gender", "reading_score"],
		"encoder": {"gender": ["female", "male"]},
		"scaler": {"reading_score": {"mean": 50, "scale": 10}},
		"model": {"weights": [1.0], "intercept": 0}
	}`)

	_, err := pipeline.Load(pipeline.Config{ArtifactPath: path, Logger: testLogger()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "weights")
}

func TestLoadRejectsZeroScale(t *testing.T) {
	path := writeArtifact(t, `{
		"version": 1,
		"columns": ["reading_score"],
		"encoder": {},
		"scaler": {"reading_score": {"mean": 50, "scale": 0}},
		"model": {"weights": [1.0], "intercept": 0}
	}`)

	_, err := pipeline.Load(pipeline.Config{ArtifactPath: path, Logger: testLogger()})
	require.Error(t, err)
}

func TestLoadRejectsCorruptArtifact(t *testing.T) {
	path := writeArtifact(t, `{not json`)

	_, err := pipeline.Load(pipeline.Config{ArtifactPath: path, Logger: testLogger()})
	require.Error(t, err)
}

func TestNewFrameValidation(t *testing.T) {
	_, err := pipeline.NewFrame(nil, nil)
	require.Error(t, err)

	_, err = pipeline.NewFrame([]string{"a"}, []interface{}{1.0, 2.0})
	require.Error(t, err)

	_, err = pipeline.NewFrame([]string{"a", "a"}, []interface{}{1.0, 2.0})
	require.Error(t, err)
}

func writeArtifact(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
