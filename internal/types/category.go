//nolint:revive // types is a standard Go package name pattern
package types

// Category identifies one scored section of a Report.
type Category string

// Category constants
const (
	CategoryEvidence     Category = "evidence"
	CategoryBias         Category = "bias"
	CategoryRelevancy    Category = "relevancy"
	CategoryCitation     Category = "citation"
	CategoryAuthor       Category = "author"
	CategoryOrganization Category = "organization"
	CategoryUsefulness   Category = "usefulness"
)

// CardOrder is the fixed slot ordering for score cards and modal lookup.
// Slot N always receives category N.
var CardOrder = []Category{
	CategoryEvidence,
	CategoryBias,
	CategoryRelevancy,
	CategoryCitation,
	CategoryAuthor,
	CategoryUsefulness,
}

// ExportOrder is the paragraph ordering used by the text and document exports.
var ExportOrder = []Category{
	CategoryBias,
	CategoryEvidence,
	CategoryAuthor,
	CategoryCitation,
	CategoryRelevancy,
	CategoryUsefulness,
}

var categoryLabels = map[Category]string{
	CategoryEvidence:     "Evidence Quality",
	CategoryBias:         "Bias Analysis",
	CategoryRelevancy:    "Relevancy",
	CategoryCitation:     "Citation Quality",
	CategoryAuthor:       "Author Credibility",
	CategoryOrganization: "Organization",
	CategoryUsefulness:   "Usefulness",
}

// Label returns the human-readable label for a category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory resolves a category name, reporting whether it is known.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	_, ok := categoryLabels[c]
	return c, ok
}
