package report

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies why a stored report could not be loaded.
type ParseErrorKind string

const (
	// MissingData means no payload was stored, e.g. the results view was opened directly.
	MissingData ParseErrorKind = "missing_data"
	// MalformedJSON means a payload exists but cannot be decoded.
	MalformedJSON ParseErrorKind = "malformed_json"
)

// ParseError is returned by Parse. Both kinds are terminal for the results view.
type ParseError struct {
	Kind  ParseErrorKind
	Cause error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case MissingData:
		return "parse error: no analysis data found"
	case MalformedJSON:
		if e.Cause != nil {
			return fmt.Sprintf("parse error: stored analysis is not valid JSON: %v", e.Cause)
		}
		return "parse error: stored analysis is not valid JSON"
	default:
		return fmt.Sprintf("parse error: %s", e.Kind)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsMissing reports whether err is a MissingData parse error.
func IsMissing(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == MissingData
}
