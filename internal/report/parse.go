// Package report decodes stored analysis payloads into the Report model.
package report

import (
	"bytes"
	"encoding/json"

	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/schemas"
	"github.com/jonathan/credibility-report/internal/types"
	rootschemas "github.com/jonathan/credibility-report/schemas"
	"github.com/sirupsen/logrus"
)

// Parse decodes a stored payload. Field-level problems never fail parsing:
// the schema check only logs, and optional fields are guarded at read time.
func Parse(raw []byte) (*types.Report, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ParseError{Kind: MissingData}
	}

	var r types.Report
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, &ParseError{Kind: MalformedJSON, Cause: err}
	}
	r.WithRaw(trimmed)

	checkSchema(trimmed)

	return &r, nil
}

// checkSchema logs advisory schema violations from the upstream service.
func checkSchema(raw []byte) {
	err := schemas.ValidateDocument(rootschemas.ReportSchema, raw)
	if err == nil {
		return
	}
	if verr, ok := err.(*schemas.ValidationError); ok {
		observability.Log.WithFields(logrus.Fields{
			"fields": verr.Fields(),
		}).Warn("report does not match schema")
		return
	}
	observability.Log.WithError(err).Warn("report schema check skipped")
}
