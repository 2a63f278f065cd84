// Package view projects a Report onto render instructions for the results view.
package view

import (
	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/types"
)

// Limits on list sections.
const (
	MaxQuotes   = 5
	MaxArticles = 3
)

// NoQuotesText is the placeholder quote shown when no evidence quotes exist.
const NoQuotesText = "No notable quotes were extracted from this article."

// ExternalLinkLabel replaces the domain of a recommended article whose URL does not parse.
const ExternalLinkLabel = "External Link"

// State is everything the results view renders. It is recomputed, never written back.
type State struct {
	Metadata   Metadata        `json:"metadata"`
	Overall    *Gauge          `json:"overall,omitempty"`
	Cards      []Card          `json:"cards"`
	Badges     []scoring.Badge `json:"badges"`
	Quotes     []Quote         `json:"quotes"`
	Articles   []Article       `json:"articles"`
	HasPurpose bool            `json:"has_purpose"`
}

// Field is a metadata value. Shown is false when the report omitted it;
// placeholder text is the renderer's decision.
type Field struct {
	Text  string `json:"text,omitempty"`
	Shown bool   `json:"shown"`
}

// Metadata holds the pass-through article fields.
type Metadata struct {
	Title          Field `json:"title"`
	Author         Field `json:"author"`
	Date           Field `json:"date"`
	PreviewText    Field `json:"preview_text"`
	CentralClaim   Field `json:"central_claim"`
	ArticleSummary Field `json:"article_summary"`
	Source         Field `json:"source"`
}

// Gauge is the overall score visualization.
type Gauge struct {
	Value    int          `json:"value"`
	BarWidth float64      `json:"bar_width"`
	Tier     scoring.Tier `json:"tier"`
}

// Card binds one Check to a score-card slot.
type Card struct {
	Category       types.Category `json:"category"`
	Label          string         `json:"label"`
	Score          int            `json:"score"`
	PercentageText string         `json:"percentage_text"`
	BarWidth       float64        `json:"bar_width"`
	Explanation    string         `json:"explanation"`
	Selectable     bool           `json:"selectable"`
}

// Quote is one entry of the quote list.
type Quote struct {
	Text        string `json:"text"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Article is a recommended-article card.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      string `json:"source,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Description string `json:"description,omitempty"`
	Domain      string `json:"domain"`

	// LinkDowngraded is set when URL did not parse and Domain is ExternalLinkLabel.
	LinkDowngraded bool `json:"link_downgraded,omitempty"`
}

// Card returns the card for a category and whether it is rendered.
func (s State) Card(c types.Category) (Card, bool) {
	for _, card := range s.Cards {
		if card.Category == c {
			return card, true
		}
	}
	return Card{}, false
}
