package modal

import (
	"strings"

	"github.com/jonathan/credibility-report/internal/types"
	"github.com/jonathan/credibility-report/internal/view"
)

// Detail is the content of an open modal.
type Detail struct {
	Category     types.Category `json:"category"`
	Label        string         `json:"label"`
	Score        int            `json:"score"`
	Explanation  string         `json:"explanation"`
	UsefulQuotes []UsefulQuote  `json:"useful_quotes,omitempty"`
	Organization string         `json:"organization,omitempty"`
}

// UsefulQuote is a quote rendered beneath the usefulness summary.
type UsefulQuote struct {
	Quote        string `json:"quote"`
	SuggestedUse string `json:"suggested_use,omitempty"`
}

// DetailFor builds the modal content for a rendered card. It reports false when the
// card cannot open a modal.
func DetailFor(r *types.Report, card view.Card) (Detail, bool) {
	if !card.Selectable || strings.TrimSpace(card.Explanation) == "" {
		return Detail{}, false
	}

	d := Detail{
		Category:    card.Category,
		Label:       card.Label,
		Score:       card.Score,
		Explanation: card.Explanation,
	}
	if r == nil {
		return d, true
	}

	switch card.Category {
	case types.CategoryUsefulness:
		if r.HasPurpose && r.UsefulnessCheck != nil {
			for _, q := range r.UsefulnessCheck.UsefulQuotes {
				if strings.TrimSpace(q.Quote) == "" {
					continue
				}
				d.UsefulQuotes = append(d.UsefulQuotes, UsefulQuote{Quote: q.Quote, SuggestedUse: q.SuggestedUse})
			}
		}
	case types.CategoryAuthor:
		if r.OrganizationCheck != nil {
			d.Organization = strings.TrimSpace(r.OrganizationCheck.Summary)
		}
	}
	return d, true
}

// Select opens the modal for card. Selecting a card without an explanation is a no-op.
func (c *Controller) Select(r *types.Report, card view.Card) bool {
	d, ok := DetailFor(r, card)
	if !ok {
		return false
	}
	c.Open(d)
	return true
}
