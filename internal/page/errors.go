package page

import "fmt"

// SubmissionPath is where the user is sent when there is no report to show.
const SubmissionPath = "/"

// RedirectError means the results view cannot render and the caller must navigate to To.
type RedirectError struct {
	To    string
	Cause error
}

func (e *RedirectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("redirect to %s: %v", e.To, e.Cause)
	}
	return fmt.Sprintf("redirect to %s", e.To)
}

func (e *RedirectError) Unwrap() error {
	return e.Cause
}
