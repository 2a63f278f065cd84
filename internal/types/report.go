// Package types provides type definitions for structured data used throughout the credibility report viewer.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"math"
)

// Report is the full structured analysis result for one article.
// It is immutable once received; derived state is always recomputed from it.
type Report struct {
	Metadata            *Metadata            `json:"metadata,omitempty"`
	OverallCredibility  *Score               `json:"overall_credibility,omitempty"`
	HasPurpose          bool                 `json:"hasPurpose"`
	EvidenceCheck       *Check               `json:"evidence_check,omitempty"`
	BiasCheck           *Check               `json:"bias_check,omitempty"`
	RelevancyCheck      *Check               `json:"relevancy_check,omitempty"`
	CitationCheck       *Check               `json:"citation_check,omitempty"`
	AuthorCredibility   *Check               `json:"author_credibility,omitempty"`
	OrganizationCheck   *Check               `json:"organization_check,omitempty"`
	UsefulnessCheck     *Check               `json:"usefulness_check,omitempty"`
	RecommendedArticles []RecommendedArticle `json:"recommended_articles,omitempty"`

	raw json.RawMessage
}

// Metadata describes the analyzed article. Every field is optional.
type Metadata struct {
	Title          string `json:"title,omitempty"`
	Author         string `json:"author,omitempty"`
	Date           string `json:"date,omitempty"`
	PreviewText    string `json:"preview_text,omitempty"`
	CentralClaim   string `json:"central_claim,omitempty"`
	ArticleSummary string `json:"article_summary,omitempty"`
	Source         string `json:"source,omitempty"`
}

// Check is one scored category within a Report.
type Check struct {
	OverallScore    *Score         `json:"overall_score,omitempty"`
	ConfidenceScore *Score         `json:"confidence_score,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	EvidenceItems   []EvidenceItem `json:"evidence_items,omitempty"`
	UsefulQuotes    []UsefulQuote  `json:"useful_quotes,omitempty"`
}

// UsefulQuote is a quote the usefulness check considers relevant to the requester's purpose.
type UsefulQuote struct {
	Quote        string `json:"quote"`
	SuggestedUse string `json:"suggested_use,omitempty"`
	Relevance    string `json:"relevance,omitempty"`
}

// RecommendedArticle is a related reading suggestion.
type RecommendedArticle struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Source      string `json:"source,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Description string `json:"description,omitempty"`
}

// Score is a 0-100 score. The upstream service may send fractional values.
type Score float64

// Int returns the score rounded to the nearest integer for display.
func (s Score) Int() int {
	return int(math.Round(float64(s)))
}

// NewScore returns a pointer to a Score, for building reports in code.
func NewScore(v float64) *Score {
	s := Score(v)
	return &s
}

// EvidenceItem is one entry of evidence_check.evidence_items.
// The service emits either a bare quote string or an object with a description.
type EvidenceItem struct {
	Text string
}

// UnmarshalJSON accepts a JSON string or an object carrying "quote" or "description".
func (e *EvidenceItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = s
		return nil
	}

	var obj struct {
		Quote       string `json:"quote"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Text = obj.Quote
	if e.Text == "" {
		e.Text = obj.Description
	}
	return nil
}

// MarshalJSON writes the item back as a plain quote string.
func (e EvidenceItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Text)
}

// Raw returns the bytes the report was decoded from, or nil for reports built in code.
func (r *Report) Raw() json.RawMessage {
	return r.raw
}

// WithRaw records the stored representation the report was decoded from.
func (r *Report) WithRaw(raw []byte) *Report {
	r.raw = append(json.RawMessage(nil), raw...)
	return r
}

// CheckFor returns the Check bound to a category, or nil when it was not computed.
func (r *Report) CheckFor(c Category) *Check {
	switch c {
	case CategoryEvidence:
		return r.EvidenceCheck
	case CategoryBias:
		return r.BiasCheck
	case CategoryRelevancy:
		return r.RelevancyCheck
	case CategoryCitation:
		return r.CitationCheck
	case CategoryAuthor:
		return r.AuthorCredibility
	case CategoryOrganization:
		return r.OrganizationCheck
	case CategoryUsefulness:
		return r.UsefulnessCheck
	default:
		return nil
	}
}

// Title returns the metadata title or an empty string.
func (r *Report) Title() string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata.Title
}
