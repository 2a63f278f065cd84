package export

import "fmt"

// Severity of a user-visible notice.
type Severity string

// Severities
const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notice is the confirmation or failure message shown after an export or share.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// NoticeFor describes the outcome of an export.
func NoticeFor(a *Artifact, err error) Notice {
	if err != nil {
		return Notice{Severity: SeverityError, Message: err.Error()}
	}
	return Notice{Severity: SeveritySuccess, Message: fmt.Sprintf("Report exported as %s", a.Filename)}
}
