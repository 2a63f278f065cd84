// Package export serializes a Report into downloadable artifacts and share payloads.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Format is an export format.
type Format string

// Formats
const (
	FormatJSON Format = "json"
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name or common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "txt", "text":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, txt or pdf)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// FilenamePrefix starts every artifact name.
const FilenamePrefix = "credibility-report"

// Filename returns the artifact name for a format generated at t.
func Filename(f Format, t time.Time) string {
	return fmt.Sprintf("%s-%s.%s", FilenamePrefix, t.Format("20060102-150405"), f)
}

// Artifact is a complete export ready for download.
type Artifact struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}
