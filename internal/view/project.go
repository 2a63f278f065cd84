package view

import (
	"net/url"
	"strings"

	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/types"
)

// Project builds the render instructions for a report. It has no side effects.
func Project(r *types.Report) State {
	state := State{
		Cards:    []Card{},
		Badges:   scoring.BadgesFor(r),
		Quotes:   []Quote{},
		Articles: []Article{},
	}
	if r == nil {
		state.Quotes = append(state.Quotes, Quote{Text: NoQuotesText, Placeholder: true})
		return state
	}

	state.HasPurpose = r.HasPurpose
	state.Metadata = projectMetadata(r.Metadata)

	if r.OverallCredibility != nil {
		value := r.OverallCredibility.Int()
		state.Overall = &Gauge{
			Value:    value,
			BarWidth: scoring.BarWidth(float64(*r.OverallCredibility)),
			Tier:     scoring.TierOf(value),
		}
	}

	state.Cards = projectCards(r)
	state.Quotes = projectQuotes(r.EvidenceCheck)
	state.Articles = projectArticles(r.RecommendedArticles)

	return state
}

// Categories returns the slot ordering in use for a report.
func Categories(hasPurpose bool) []types.Category {
	if hasPurpose {
		return types.CardOrder
	}
	return types.CardOrder[:len(types.CardOrder)-1]
}

func projectMetadata(m *types.Metadata) Metadata {
	if m == nil {
		return Metadata{}
	}
	return Metadata{
		Title:          field(m.Title),
		Author:         field(m.Author),
		Date:           field(m.Date),
		PreviewText:    field(m.PreviewText),
		CentralClaim:   field(m.CentralClaim),
		ArticleSummary: field(m.ArticleSummary),
		Source:         field(m.Source),
	}
}

func field(s string) Field {
	if strings.TrimSpace(s) == "" {
		return Field{}
	}
	return Field{Text: s, Shown: true}
}

// projectCards zips the fixed category order with the checks that carry a score.
func projectCards(r *types.Report) []Card {
	cards := []Card{}
	for _, category := range Categories(r.HasPurpose) {
		check := r.CheckFor(category)
		if check == nil || check.OverallScore == nil {
			continue
		}
		score := check.OverallScore.Int()
		explanation := strings.TrimSpace(check.Summary)
		cards = append(cards, Card{
			Category:       category,
			Label:          category.Label(),
			Score:          score,
			PercentageText: scoring.PercentageText(score),
			BarWidth:       scoring.BarWidth(float64(*check.OverallScore)),
			Explanation:    explanation,
			Selectable:     explanation != "",
		})
	}
	return cards
}

func projectQuotes(evidence *types.Check) []Quote {
	quotes := []Quote{}
	if evidence != nil {
		for _, item := range evidence.EvidenceItems {
			if len(quotes) == MaxQuotes {
				break
			}
			quotes = append(quotes, Quote{Text: item.Text})
		}
	}
	if len(quotes) == 0 {
		quotes = append(quotes, Quote{Text: NoQuotesText, Placeholder: true})
	}
	return quotes
}

func projectArticles(articles []types.RecommendedArticle) []Article {
	out := []Article{}
	for i, a := range articles {
		if i == MaxArticles {
			break
		}
		domain, ok := DisplayDomain(a.URL)
		out = append(out, Article{
			URL:            a.URL,
			Title:          a.Title,
			Source:         a.Source,
			Tag:            a.Tag,
			Description:    a.Description,
			Domain:         domain,
			LinkDowngraded: !ok,
		})
	}
	return out
}

// DisplayDomain returns the host of rawURL without a leading "www.".
// Anything that is not an absolute URL yields ExternalLinkLabel and false.
func DisplayDomain(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return ExternalLinkLabel, false
	}
	return strings.TrimPrefix(u.Hostname(), "www."), true
}
