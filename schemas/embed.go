// Package schemas embeds the JSON Schema documents shipped with the repository.
package schemas

import _ "embed"

// ReportSchema is the advisory schema for reports produced by the analysis service.
//
//go:embed report.schema.json
var ReportSchema string
