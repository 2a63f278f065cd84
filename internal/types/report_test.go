//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_UnmarshalFullShape(t *testing.T) {
	raw := `{
		"metadata": {"title": "Sleep and memory", "author": "A. Writer", "source": "example.com"},
		"overall_credibility": 78,
		"hasPurpose": true,
		"bias_check": {"overall_score": 60, "confidence_score": 80, "summary": "Mostly neutral."},
		"evidence_check": {"overall_score": 70.4, "summary": "Good.", "evidence_items": ["Quote 1", {"description": "Quote 2", "strength": "strong"}]},
		"usefulness_check": {"overall_score": 55, "summary": "Useful.", "useful_quotes": [{"quote": "q", "suggested_use": "background"}]},
		"recommended_articles": [{"url": "https://www.example.com/a", "title": "A"}]
	}`

	var r Report
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, "Sleep and memory", r.Title())
	require.NotNil(t, r.OverallCredibility)
	assert.Equal(t, 78, r.OverallCredibility.Int())
	assert.True(t, r.HasPurpose)
	require.NotNil(t, r.EvidenceCheck)
	assert.Equal(t, 70, r.EvidenceCheck.OverallScore.Int())
	require.Len(t, r.EvidenceCheck.EvidenceItems, 2)
	assert.Equal(t, "Quote 1", r.EvidenceCheck.EvidenceItems[0].Text)
	assert.Equal(t, "Quote 2", r.EvidenceCheck.EvidenceItems[1].Text)
	require.Len(t, r.UsefulnessCheck.UsefulQuotes, 1)
	assert.Equal(t, "background", r.UsefulnessCheck.UsefulQuotes[0].SuggestedUse)
	assert.Nil(t, r.CitationCheck, "absent check means not computed")
}

func TestReport_ZeroScoreIsPresent(t *testing.T) {
	var r Report
	require.NoError(t, json.Unmarshal([]byte(`{"bias_check": {"overall_score": 0}}`), &r))
	require.NotNil(t, r.BiasCheck.OverallScore)
	assert.Equal(t, 0, r.BiasCheck.OverallScore.Int())
}

func TestReport_CheckFor(t *testing.T) {
	r := Report{
		AuthorCredibility: &Check{Summary: "author"},
		OrganizationCheck: &Check{Summary: "org"},
	}
	assert.Equal(t, "author", r.CheckFor(CategoryAuthor).Summary)
	assert.Equal(t, "org", r.CheckFor(CategoryOrganization).Summary)
	assert.Nil(t, r.CheckFor(CategoryBias))
	assert.Nil(t, r.CheckFor(Category("unknown")))
}

func TestReport_WithRawCopies(t *testing.T) {
	buf := []byte(`{"overall_credibility": 10}`)
	r := (&Report{}).WithRaw(buf)
	buf[2] = 'X'
	assert.Equal(t, `{"overall_credibility": 10}`, string(r.Raw()))
}

func TestCategory_OrdersAndLabels(t *testing.T) {
	assert.Equal(t, []Category{CategoryEvidence, CategoryBias, CategoryRelevancy, CategoryCitation, CategoryAuthor, CategoryUsefulness}, CardOrder)
	assert.Equal(t, []Category{CategoryBias, CategoryEvidence, CategoryAuthor, CategoryCitation, CategoryRelevancy, CategoryUsefulness}, ExportOrder)
	assert.Equal(t, "Bias Analysis", CategoryBias.Label())

	c, ok := ParseCategory("citation")
	assert.True(t, ok)
	assert.Equal(t, CategoryCitation, c)
	_, ok = ParseCategory("nope")
	assert.False(t, ok)
}

func TestAnalyzeTextRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request AnalyzeTextRequest
		wantErr bool
	}{
		{name: "long enough", request: AnalyzeTextRequest{Text: strings.Repeat("a", MinTextLength)}},
		{name: "too short", request: AnalyzeTextRequest{Text: "short"}, wantErr: true},
		{name: "missing", request: AnalyzeTextRequest{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeURLRequest_Validation(t *testing.T) {
	assert.NoError(t, (&AnalyzeURLRequest{URL: "https://example.com/a"}).Validate())
	assert.Error(t, (&AnalyzeURLRequest{URL: "not a url"}).Validate())
	assert.Error(t, (&AnalyzeURLRequest{}).Validate())
}

func TestAnalyzeFileRequest_Validation(t *testing.T) {
	assert.NoError(t, (&AnalyzeFileRequest{Filename: "paper.pdf", Size: 10}).Validate())
	assert.Error(t, (&AnalyzeFileRequest{Filename: "paper.pdf"}).Validate())
	assert.Error(t, (&AnalyzeFileRequest{Size: 10}).Validate())
}
