package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIdentifier is returned when a barcode does not decompose
	// into bin, shipto and product segments.
	ErrMalformedIdentifier = errors.New("malformed barcode identifier")

	// ErrInvalidPriceFormat is returned when a price field is not numeric
	// after currency symbol and thousands separators are stripped.
	ErrInvalidPriceFormat = errors.New("invalid price format")

	// ErrInvalidQuantity is returned when a quantity cell is not numeric.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// RowError wraps a parsing failure with the operation, file and row where it
// occurred so the operator can find the offending line.
type RowError struct {
	Op   string
	File string
	Row  int
	Err  error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("reconcile: %s failed at %s row %d: %v", e.Op, e.File, e.Row, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *RowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRowError creates a RowError for the given operation, file and row.
func NewRowError(op, file string, row int, err error) *RowError {
	return &RowError{Op: op, File: file, Row: row, Err: err}
}
