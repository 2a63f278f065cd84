package scoring

import "github.com/jonathan/credibility-report/internal/types"

// Severity drives badge styling.
type Severity string

// Severity constants
const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Badge is a short derived label summarizing one category's outcome.
type Badge struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// BadgesFor derives the badge strip in evaluation order bias, evidence, relevancy.
// Absent categories contribute nothing.
func BadgesFor(r *types.Report) []Badge {
	badges := []Badge{}
	if r == nil {
		return badges
	}

	if score, ok := scoreOf(r.BiasCheck); ok {
		switch {
		case score >= 70:
			badges = append(badges, Badge{Text: "Minimal Bias", Severity: SeveritySuccess})
		case score < 50:
			badges = append(badges, Badge{Text: "Potential Bias Detected", Severity: SeverityWarning})
		default:
			badges = append(badges, Badge{Text: "Moderate Bias", Severity: SeverityInfo})
		}
	}

	if score, ok := scoreOf(r.EvidenceCheck); ok {
		switch {
		case score >= 70:
			badges = append(badges, Badge{Text: "Factually Sound", Severity: SeveritySuccess})
		case score < 50:
			badges = append(badges, Badge{Text: "Weak Evidence", Severity: SeverityWarning})
		}
	}

	if score, ok := scoreOf(r.RelevancyCheck); ok {
		switch {
		case score >= 70:
			badges = append(badges, Badge{Text: "Recent Publication", Severity: SeverityInfo})
		case score < 50:
			badges = append(badges, Badge{Text: "Outdated Content", Severity: SeverityWarning})
		}
	}

	return badges
}

// scoreOf returns the check's raw score. Thresholds compare the unrounded value.
func scoreOf(c *types.Check) (float64, bool) {
	if c == nil || c.OverallScore == nil {
		return 0, false
	}
	return float64(*c.OverallScore), true
}
