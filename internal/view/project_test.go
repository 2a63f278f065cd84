package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/types"
)

func check(score float64, summary string) *types.Check {
	return &types.Check{OverallScore: types.NewScore(score), Summary: summary}
}

func fullReport() *types.Report {
	return &types.Report{
		Metadata:           &types.Metadata{Title: "Sleep and memory", Author: "A. Writer"},
		OverallCredibility: types.NewScore(78),
		EvidenceCheck:      check(70, "Evidence."),
		BiasCheck:          check(60, "Bias."),
		RelevancyCheck:     check(80, "Relevant."),
		CitationCheck:      check(65, "Citations."),
		AuthorCredibility:  check(72, "Author."),
		UsefulnessCheck:    check(55, "Useful."),
	}
}

func categoriesOf(cards []Card) []types.Category {
	out := make([]types.Category, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Category)
	}
	return out
}

func TestProject_ScenarioBadgesAndGauge(t *testing.T) {
	state := Project(fullReport())

	require.NotNil(t, state.Overall)
	assert.Equal(t, 78, state.Overall.Value)
	assert.Equal(t, scoring.TierGood, state.Overall.Tier)

	texts := []string{}
	for _, b := range state.Badges {
		texts = append(texts, b.Text)
	}
	assert.Equal(t, []string{"Moderate Bias", "Factually Sound", "Recent Publication"}, texts)
}

func TestProject_CardOrderAndPurposeGate(t *testing.T) {
	r := fullReport()

	state := Project(r)
	assert.Equal(t, []types.Category{
		types.CategoryEvidence, types.CategoryBias, types.CategoryRelevancy,
		types.CategoryCitation, types.CategoryAuthor,
	}, categoriesOf(state.Cards), "usefulness hidden without a purpose")

	r.HasPurpose = true
	state = Project(r)
	assert.Equal(t, types.CardOrder, categoriesOf(state.Cards))
}

func TestProject_MissingCheckSkipsSlot(t *testing.T) {
	r := fullReport()
	r.RelevancyCheck = nil
	r.CitationCheck = &types.Check{Summary: "no score"}

	state := Project(r)
	assert.Equal(t, []types.Category{types.CategoryEvidence, types.CategoryBias, types.CategoryAuthor}, categoriesOf(state.Cards))
}

func TestProject_CardFields(t *testing.T) {
	r := &types.Report{BiasCheck: check(140, "  Leans left.  ")}
	state := Project(r)

	card, ok := state.Card(types.CategoryBias)
	require.True(t, ok)
	assert.Equal(t, Card{
		Category:       types.CategoryBias,
		Label:          "Bias Analysis",
		Score:          140,
		PercentageText: "140%",
		BarWidth:       100,
		Explanation:    "Leans left.",
		Selectable:     true,
	}, card)
}

func TestProject_EmptySummaryRendersButNotSelectable(t *testing.T) {
	state := Project(&types.Report{EvidenceCheck: check(40, "")})
	card, ok := state.Card(types.CategoryEvidence)
	require.True(t, ok)
	assert.False(t, card.Selectable)
}

func TestProject_Quotes(t *testing.T) {
	tests := []struct {
		name  string
		check *types.Check
		want  []Quote
	}{
		{name: "absent", check: nil, want: []Quote{{Text: NoQuotesText, Placeholder: true}}},
		{name: "empty", check: &types.Check{}, want: []Quote{{Text: NoQuotesText, Placeholder: true}}},
		{name: "two", check: &types.Check{EvidenceItems: []types.EvidenceItem{{Text: "a"}, {Text: "b"}}}, want: []Quote{{Text: "a"}, {Text: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Project(&types.Report{EvidenceCheck: tt.check})
			assert.Equal(t, tt.want, state.Quotes)
		})
	}
}

func TestProject_QuotesTruncatedToFive(t *testing.T) {
	items := []types.EvidenceItem{}
	for i := 0; i < 8; i++ {
		items = append(items, types.EvidenceItem{Text: fmt.Sprintf("q%d", i)})
	}
	state := Project(&types.Report{EvidenceCheck: &types.Check{EvidenceItems: items}})
	require.Len(t, state.Quotes, MaxQuotes)
	assert.Equal(t, "q4", state.Quotes[4].Text)
}

func TestProject_Articles(t *testing.T) {
	r := &types.Report{RecommendedArticles: []types.RecommendedArticle{
		{URL: "https://www.example.com/a", Title: "A"},
		{URL: "not a url", Title: "B"},
		{URL: "https://news.example.org:8443/c", Title: "C"},
		{URL: "https://example.net/d", Title: "D"},
	}}

	state := Project(r)
	require.Len(t, state.Articles, MaxArticles)
	assert.Equal(t, "example.com", state.Articles[0].Domain)
	assert.Equal(t, ExternalLinkLabel, state.Articles[1].Domain)
	assert.True(t, state.Articles[1].LinkDowngraded)
	assert.False(t, state.Articles[0].LinkDowngraded)
	assert.Equal(t, "news.example.org", state.Articles[2].Domain)
}

func TestDisplayDomain(t *testing.T) {
	tests := map[string]string{
		"https://www.nytimes.com/2024/01/x": "nytimes.com",
		"http://example.com":                "example.com",
		"https://wwwexample.com":            "wwwexample.com",
		"":                                  ExternalLinkLabel,
		"example.com/path":                  ExternalLinkLabel,
		"://broken":                         ExternalLinkLabel,
	}
	for in, want := range tests {
		got, ok := DisplayDomain(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, want != ExternalLinkLabel, ok, in)
	}
}

func TestProject_Metadata(t *testing.T) {
	state := Project(&types.Report{Metadata: &types.Metadata{Title: "T", Author: " "}})
	assert.Equal(t, Field{Text: "T", Shown: true}, state.Metadata.Title)
	assert.False(t, state.Metadata.Author.Shown)
	assert.False(t, state.Metadata.Date.Shown)
}

func TestProject_NilReport(t *testing.T) {
	state := Project(nil)
	assert.Nil(t, state.Overall)
	assert.Empty(t, state.Cards)
	assert.Empty(t, state.Badges)
	assert.Len(t, state.Quotes, 1)
}

func TestProject_NoOverallHidesGauge(t *testing.T) {
	state := Project(&types.Report{BiasCheck: check(60, "b")})
	assert.Nil(t, state.Overall)
}
