package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputDirNotFound is returned when the input directory does not exist.
	ErrInputDirNotFound = errors.New("input directory not found")
	// ErrEmptyAmount marks a blank amount cell; the row is dropped, not the file.
	ErrEmptyAmount = errors.New("empty amount")
)

// FormatDetectionError is returned when no date/description/amount column
// triple can be resolved for a file.
type FormatDetectionError struct {
	File    string
	Columns []string
}

func (e *FormatDetectionError) Error() string {
	return fmt.Sprintf("cannot auto-detect columns in %s: found [%s]; rename columns to include 'date', 'description' or 'memo', and 'amount'",
		e.File, strings.Join(e.Columns, ", "))
}

// FileWarning records a file that was skipped during ingestion.
type FileWarning struct {
	File string
	Err  error
}

func (w FileWarning) Error() string {
	return fmt.Sprintf("skipped %s: %v", w.File, w.Err)
}

func (w FileWarning) Unwrap() error { return w.Err }

// NoValidDataError is returned when not a single input file could be loaded.
type NoValidDataError struct {
	Dir      string
	Warnings []FileWarning
}

func (e *NoValidDataError) Error() string {
	if len(e.Warnings) == 0 {
		if e.Dir != "" {
			return fmt.Sprintf("no CSV files found in %s", e.Dir)
		}
		return "no CSV files to load"
	}
	return fmt.Sprintf("no valid CSV files could be loaded (%d skipped; first: %v)", len(e.Warnings), e.Warnings[0])
}
