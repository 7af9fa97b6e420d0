package dto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedInput indicates a numeric form field that does not parse as a
// floating-point literal.
var ErrMalformedInput = errors.New("malformed prediction input")

// PredictRequest captures the raw form fields submitted from the score form.
// All fields arrive as strings; the two score fields are coerced to floats by
// Record. Category values are deliberately not validated against an enum here,
// the preprocessing transform rejects unknown categories downstream.
type PredictRequest struct {
	Gender                   string `form:"gender" validate:"required"`
	Ethnicity                string `form:"ethnicity" validate:"required"`
	ParentalLevelOfEducation string `form:"parental_level_of_education" validate:"required"`
	Lunch                    string `form:"lunch" validate:"required"`
	TestPreparationCourse    string `form:"test_preparation_course" validate:"required"`
	ReadingScore             string `form:"reading_score" validate:"required"`
	WritingScore             string `form:"writing_score" validate:"required"`
}

// StudentRecord is the typed single-student record handed to the feature
// frame builder. It lives for one request only.
type StudentRecord struct {
	Gender                   string
	RaceEthnicity            string
	ParentalLevelOfEducation string
	Lunch                    string
	TestPreparationCourse    string
	ReadingScore             float64
	WritingScore             float64
}

// Record coerces the raw form payload into a typed StudentRecord.
//
// The form's writing_score feeds the record's ReadingScore and vice versa.
// This mirrors the schema the upstream model was trained against; swapping
// them back would change every prediction, so the crossed mapping is kept.
func (r PredictRequest) Record() (StudentRecord, error) {
	reading, err := parseScore("writing_score", r.WritingScore)
	if err != nil {
		return StudentRecord{}, err
	}

	writing, err := parseScore("reading_score", r.ReadingScore)
	if err != nil {
		return StudentRecord{}, err
	}

	return StudentRecord{
		Gender:                   r.Gender,
		RaceEthnicity:            r.Ethnicity,
		ParentalLevelOfEducation: r.ParentalLevelOfEducation,
		Lunch:                    r.Lunch,
		TestPreparationCourse:    r.TestPreparationCourse,
		ReadingScore:             reading,
		WritingScore:             writing,
	}, nil
}

func parseScore(field, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %s value %q is not numeric", ErrMalformedInput, field, raw)
	}
	return value, nil
}

// PredictionResponse carries the rounded model score back to the caller.
type PredictionResponse struct {
	Score float64 `json:"score"`
}

// Display renders the score with exactly two decimal places for the results
// page.
func (r PredictionResponse) Display() string {
	return strconv.FormatFloat(r.Score, 'f', 2, 64)
}
