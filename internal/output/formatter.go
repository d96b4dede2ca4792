// Package output renders projection results in multiple formats.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/hplan/household-planner/internal/domain"
)

// Report bundles everything a formatter may render.
type Report struct {
	Input  *domain.ScenarioInput
	Result *domain.ProjectionResult
}

// Formatter renders a projection report into a specific output format.
type Formatter interface {
	// Format renders the report as a string.
	Format(report Report) (string, error)
	// Name returns the formatter's registry name.
	Name() string
}

// NewFormatter creates a formatter by name. Supported names are "console",
// "json", and "csv".
func NewFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "console", "":
		return &ConsoleFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: console, json, csv)", format)
	}
}

// WriteFormatted renders the report with the named formatter and writes it
// to w.
func WriteFormatted(w io.Writer, format string, report Report) error {
	formatter, err := NewFormatter(format)
	if err != nil {
		return err
	}
	out, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("formatting with %s failed: %w", formatter.Name(), err)
	}
	_, err = io.WriteString(w, out)
	return err
}
