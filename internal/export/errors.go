package export

import "fmt"

// UnavailableError means no artifact could be produced: either there is no report,
// or the document library failed to load. Nothing is written when it is returned.
type UnavailableError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export unavailable: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export unavailable: %s", e.Format, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// ErrNoReport is the message used when there is nothing to export.
const ErrNoReport = "no report available"
