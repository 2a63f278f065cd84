package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOf_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{65, "Good"},
		{64, "Average"},
		{50, "Average"},
		{49, "Below Average"},
		{35, "Below Average"},
		{34, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierOf(tt.score).Label, "score %d", tt.score)
	}
}

func TestTierOf_PartitionsRange(t *testing.T) {
	tiers := []Tier{TierExcellent, TierGood, TierAverage, TierBelowAverage, TierPoor}
	for s := 0; s <= 100; s++ {
		got := TierOf(s)
		matches := 0
		for _, tier := range tiers {
			if tier == got {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", s)
		assert.NotEmpty(t, got.Description)
	}
}

func TestTierOf_OutOfRangeDoesNotPanic(t *testing.T) {
	assert.Equal(t, "Excellent", TierOf(150).Label)
	assert.Equal(t, "Poor", TierOf(-10).Label)
}

func TestPercentageText(t *testing.T) {
	assert.Equal(t, "78%", PercentageText(78))
	assert.Equal(t, "0%", PercentageText(0))
	assert.Equal(t, "120%", PercentageText(120))
}

func TestBarWidth_Clamps(t *testing.T) {
	assert.Equal(t, 42.5, BarWidth(42.5))
	assert.Equal(t, 100.0, BarWidth(130))
	assert.Equal(t, 0.0, BarWidth(-4))
	assert.Equal(t, 0.0, BarWidth(math.NaN()))
}
