package calculation

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the engine's failure taxonomy. Callers match with
// errors.Is; detail is attached by wrapping.
var (
	// ErrInvalidDefinition indicates a malformed recurring definition:
	// negative amount, end date before start date, unsupported frequency.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrUnsupportedTaxJurisdiction indicates a missing bracket table for
	// the requested state code or filing status.
	ErrUnsupportedTaxJurisdiction = errors.New("unsupported tax jurisdiction")

	// ErrNegativeQuantity indicates negative shares, principal, or balance
	// supplied as input.
	ErrNegativeQuantity = errors.New("negative quantity")

	// ErrHorizon indicates a zero-length or inverted projection window.
	ErrHorizon = errors.New("invalid projection horizon")
)

// ValidationError aggregates every violation found during the upfront
// validation pass so callers can report all of them at once. It matches any
// of its wrapped violations via errors.Is.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("scenario validation failed: %v", e.Violations[0])
	}
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("scenario validation failed with %d violations: %s", len(e.Violations), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Violations
}
