package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/types"
)

// NotAvailable is printed for every missing value in the text and document exports.
const NotAvailable = "N/A"

// ReportTitle is the banner of the text and document exports.
const ReportTitle = "CREDIBILITY ANALYSIS REPORT"

// content is the layout-independent body shared by the text and document exports.
type content struct {
	Generated string
	Metadata  []field
	Overall   string
	Sections  []section
}

type field struct {
	Label string
	Value string
}

type section struct {
	Heading string
	Body    string
}

func buildContent(r *types.Report, now time.Time) content {
	meta := r.Metadata
	if meta == nil {
		meta = &types.Metadata{}
	}

	c := content{
		Generated: now.Format("2006-01-02 15:04:05"),
		Metadata: []field{
			{Label: "Title", Value: orNA(meta.Title)},
			{Label: "Author", Value: orNA(meta.Author)},
			{Label: "Date", Value: orNA(meta.Date)},
			{Label: "Source", Value: orNA(meta.Source)},
			{Label: "Central Claim", Value: orNA(flattenMarkup(meta.CentralClaim))},
		},
		Overall: "Overall Credibility Score: " + NotAvailable,
	}

	if r.OverallCredibility != nil {
		score := r.OverallCredibility.Int()
		c.Overall = fmt.Sprintf("Overall Credibility Score: %s (%s)", scoring.PercentageText(score), scoring.TierOf(score).Label)
	}

	for _, category := range exportCategories(r.HasPurpose) {
		c.Sections = append(c.Sections, buildSection(category, r.CheckFor(category)))
	}
	return c
}

func buildSection(category types.Category, check *types.Check) section {
	heading := strings.ToUpper(category.Label())
	if check == nil || check.OverallScore == nil {
		s := section{Heading: fmt.Sprintf("%s (%s)", heading, NotAvailable), Body: NotAvailable}
		if check != nil {
			s.Body = orNA(flattenMarkup(check.Summary))
		}
		return s
	}
	return section{
		Heading: fmt.Sprintf("%s (%s)", heading, scoring.PercentageText(check.OverallScore.Int())),
		Body:    orNA(flattenMarkup(check.Summary)),
	}
}

func exportCategories(hasPurpose bool) []types.Category {
	if hasPurpose {
		return types.ExportOrder
	}
	out := make([]types.Category, 0, len(types.ExportOrder))
	for _, c := range types.ExportOrder {
		if c != types.CategoryUsefulness {
			out = append(out, c)
		}
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
