package pipeline

import "fmt"

// Canonical column names of the score model's feature schema.
const (
	ColumnGender                   = "gender"
	ColumnRaceEthnicity            = "race_ethnicity"
	ColumnParentalLevelOfEducation = "parental_level_of_education"
	ColumnLunch                    = "lunch"
	ColumnTestPreparationCourse    = "test_preparation_course"
	ColumnReadingScore             = "reading_score"
	ColumnWritingScore             = "writing_score"
)

// Columns returns the feature column order frozen at training time. Callers
// must build frames in exactly this order; the pipeline rejects anything else.
func Columns() []string {
	return []string{
		ColumnGender,
		ColumnRaceEthnicity,
		ColumnParentalLevelOfEducation,
		ColumnLunch,
		ColumnTestPreparationCourse,
		ColumnReadingScore,
		ColumnWritingScore,
	}
}

// Frame is a single-row tabular feature set. Column order is part of the
// trained pipeline's contract and is fixed at construction.
type Frame struct {
	columns []string
	cells   map[string]interface{}
}

// NewFrame builds a one-row frame from parallel column and value slices.
func NewFrame(columns []string, values []interface{}) (Frame, error) {
	if len(columns) == 0 {
		return Frame{}, fmt.Errorf("frame requires at least one column")
	}
	if len(columns) != len(values) {
		return Frame{}, fmt.Errorf("frame has %d columns but %d values", len(columns), len(values))
	}

	cells := make(map[string]interface{}, len(columns))
	ordered := make([]string, len(columns))
	for i, column := range columns {
		if _, exists := cells[column]; exists {
			return Frame{}, fmt.Errorf("duplicate frame column %q", column)
		}
		cells[column] = values[i]
		ordered[i] = column
	}

	return Frame{columns: ordered, cells: cells}, nil
}

// Columns returns the frame's column names in their fixed order.
func (f Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Value returns the cell stored under the given column.
func (f Frame) Value(column string) (interface{}, bool) {
	value, ok := f.cells[column]
	return value, ok
}

// String returns the raw string cell for a categorical column.
func (f Frame) String(column string) (string, error) {
	value, ok := f.cells[column]
	if !ok {
		return "", fmt.Errorf("frame is missing column %q", column)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("frame column %q holds %T, want string", column, value)
	}
	return s, nil
}

// Float returns the numeric cell for a numeric column.
func (f Frame) Float(column string) (float64, error) {
	value, ok := f.cells[column]
	if !ok {
		return 0, fmt.Errorf("frame is missing column %q", column)
	}
	v, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("frame column %q holds %T, want float64", column, value)
	}
	return v, nil
}
