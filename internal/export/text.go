package export

import (
	"strings"
	"time"

	"github.com/jonathan/credibility-report/internal/types"
)

const rule = "=================================================="

// Text renders the fixed-template plain text report.
func Text(r *types.Report, now time.Time) []byte {
	c := buildContent(r, now)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(ReportTitle + "\n")
	b.WriteString(rule + "\n")
	b.WriteString("Generated: " + c.Generated + "\n\n")

	b.WriteString("ARTICLE INFORMATION\n")
	for _, f := range c.Metadata {
		b.WriteString(f.Label + ": " + f.Value + "\n")
	}
	b.WriteString("\n")

	b.WriteString(c.Overall + "\n\n")

	b.WriteString("DETAILED ANALYSIS\n")
	b.WriteString(strings.Repeat("-", len(rule)) + "\n")
	for _, s := range c.Sections {
		b.WriteString(s.Heading + "\n")
		b.WriteString(s.Body + "\n\n")
	}
	return []byte(b.String())
}
