package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyDataset  = errors.New("empty csv file given")
	ErrNotNormalized = errors.New("table has no normalized timestamps")
)

// MissingColumnError reports the first required column absent from the input header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in csv file", e.Column)
}

// DateTimeParseError lists every row (1-based, header excluded) whose timestamp could not be built.
type DateTimeParseError struct {
	Rows   []int
	Values []string
}

func (e *DateTimeParseError) Error() string {
	if len(e.Rows) == 0 {
		return "some values could not be converted to datetime"
	}
	parts := make([]string, 0, len(e.Rows))
	for i, row := range e.Rows {
		if i == 5 {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Rows)-i))
			break
		}
		parts = append(parts, fmt.Sprintf("row %d (%q)", row, e.Values[i]))
	}
	return "some values could not be converted to datetime: " + strings.Join(parts, ", ")
}

// MissingValueError lists the cells of required numeric columns that hold no value.
type MissingValueError struct {
	Rows    []int
	Columns []string
}

func (e *MissingValueError) Error() string {
	parts := make([]string, 0, len(e.Rows))
	for i, row := range e.Rows {
		if i == 5 {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Rows)-i))
			break
		}
		parts = append(parts, fmt.Sprintf("row %d (%s)", row, e.Columns[i]))
	}
	return "missing values in csv file: " + strings.Join(parts, ", ")
}
