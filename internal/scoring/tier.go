// Package scoring maps numeric scores to qualitative tiers, badges, and bar geometry.
package scoring

import (
	"fmt"
	"math"
)

// Tier is the qualitative band an overall score falls in.
type Tier struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Tiers, highest first. Lower bounds are inclusive.
var (
	TierExcellent    = Tier{Label: "Excellent", Description: "This source demonstrates high credibility across all evaluated dimensions."}
	TierGood         = Tier{Label: "Good", Description: "This source is generally credible with only minor concerns."}
	TierAverage      = Tier{Label: "Average", Description: "This source has moderate credibility; verify key claims independently."}
	TierBelowAverage = Tier{Label: "Below Average", Description: "This source shows notable credibility issues; use with caution."}
	TierPoor         = Tier{Label: "Poor", Description: "This source has significant credibility problems and should not be relied on."}
)

// TierOf returns the tier for an overall score.
func TierOf(score int) Tier {
	switch {
	case score >= 80:
		return TierExcellent
	case score >= 65:
		return TierGood
	case score >= 50:
		return TierAverage
	case score >= 35:
		return TierBelowAverage
	default:
		return TierPoor
	}
}

// PercentageText renders a score as shown on a card. Out-of-range values are not corrected.
func PercentageText(score int) string {
	return fmt.Sprintf("%d%%", score)
}

// BarWidth returns the fill percentage of a score bar, clamped to [0,100].
func BarWidth(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(100, score))
}
