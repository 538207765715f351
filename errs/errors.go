// Package errs defines the sentinel errors returned by the analysis packages.
//
// Callers should match them with errors.Is; the packages wrap them with
// additional context using fmt.Errorf("%w: ...").
package errs

import (
	"errors"
	"fmt"
)

// Resource errors.
var (
	// ErrResource indicates the input resource is missing or unreadable.
	ErrResource = errors.New("resource error")
	// ErrUnsupportedCompression indicates an unknown compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrRender indicates the figure could not be rendered or written.
	ErrRender = errors.New("render error")
)

// Malformed-data errors.
var (
	// ErrMalformedLine indicates a line does not match the expected numeric schema.
	ErrMalformedLine = errors.New("malformed line")
	// ErrSchemaMismatch indicates a table does not carry the columns a pipeline needs.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrInvalidSchema indicates an unknown input schema.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Degenerate-fit errors.
var (
	// ErrInsufficientData indicates fewer than two points were given to a fit.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidDomain indicates a non-positive value was about to be log-transformed.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrZeroVariance indicates every x value is identical, leaving the slope undefined.
	ErrZeroVariance = errors.New("zero variance in independent variable")
	// ErrLengthMismatch indicates x and y have different lengths.
	ErrLengthMismatch = errors.New("mismatched data lengths")
)

// IsDegenerate reports whether err is a numerical precondition violation
// rather than a resource or formatting problem.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInvalidDomain) ||
		errors.Is(err, ErrZeroVariance) ||
		errors.Is(err, ErrLengthMismatch)
}

// LineError describes a malformed input line.
type LineError struct {
	// Source is the resource name, empty when parsing an anonymous reader.
	Source string
	// Line is the 1-based line number.
	Line int
	// Text is the offending line with surrounding whitespace trimmed.
	Text string
	// Reason is a short description of what was wrong.
	Reason string
}

func (e *LineError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s:%d: %s: %q", ErrMalformedLine, e.Source, e.Line, e.Reason, e.Text)
	}

	return fmt.Sprintf("%s: line %d: %s: %q", ErrMalformedLine, e.Line, e.Reason, e.Text)
}

// Unwrap makes errors.Is(err, ErrMalformedLine) hold for every LineError.
func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}
