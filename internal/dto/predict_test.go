package dto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scorecast-go-api/internal/dto"
)

func validRequest() dto.PredictRequest {
	return dto.PredictRequest{
		Gender:                   "male",
		Ethnicity:                "group B",
		ParentalLevelOfEducation: "bachelor's degree",
		Lunch:                    "standard",
		TestPreparationCourse:    "none",
		ReadingScore:             "72",
		WritingScore:             "74",
	}
}

func TestRecordCoercesScores(t *testing.T) {
	record, err := validRequest().Record()
	require.NoError(t, err)

	require.Equal(t, "male", record.Gender)
	require.Equal(t, "group B", record.RaceEthnicity)
	require.Equal(t, "bachelor's degree", record.ParentalLevelOfEducation)
	require.Equal(t, "standard", record.Lunch)
	require.Equal(t, "none", record.TestPreparationCourse)
}

func TestRecordKeepsCrossedScoreMapping(t *testing.T) {
	req := validRequest()
	req.ReadingScore = "10"
	req.WritingScore = "20"

	record, err := req.Record()
	require.NoError(t, err)

	// The trained schema crosses the two score fields.
	require.Equal(t, 20.0, record.ReadingScore)
	require.Equal(t, 10.0, record.WritingScore)
}

func TestRecordTrimsWhitespace(t *testing.T) {
	req := validRequest()
	req.ReadingScore = " 72.5 "

	record, err := req.Record()
	require.NoError(t, err)
	require.Equal(t, 72.5, record.WritingScore)
}

func TestRecordRejectsNonNumericScores(t *testing.T) {
	for _, field := range []string{"reading", "writing"} {
		req := validRequest()
		if field == "reading" {
			req.ReadingScore = "abc"
		} else {
			req.WritingScore = "ninety"
		}

		_, err := req.Record()
		require.ErrorIs(t, err, dto.ErrMalformedInput)
	}
}

func TestDisplayRoundsToTwoDecimals(t *testing.T) {
	require.Equal(t, "73.46", dto.PredictionResponse{Score: 73.46}.Display())
	require.Equal(t, "73.45", dto.PredictionResponse{Score: 73.45}.Display())
	require.Equal(t, "70.00", dto.PredictionResponse{Score: 70}.Display())
}
