// Package terminal renders the results view for a terminal.
package terminal

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/scoring"
	"github.com/jonathan/credibility-report/internal/view"
)

// DefaultWidth is the column width used when none is given.
const DefaultWidth = 80

// barCells is the number of cells in a full score bar.
const barCells = 30

// Renderer formats view state with lipgloss. Color is chosen from the output
// the renderer was built for, so plain writers get plain text.
type Renderer struct {
	width int

	title    lipgloss.Style
	heading  lipgloss.Style
	label    lipgloss.Style
	muted    lipgloss.Style
	panel    lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
	severity map[scoring.Severity]lipgloss.Style
}

// New creates a Renderer for output written to w.
func New(w io.Writer, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	r := lipgloss.NewRenderer(w)

	return &Renderer{
		width:    width,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		heading:  r.NewStyle().Bold(true).Underline(true),
		label:    r.NewStyle().Bold(true),
		muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		panel:    r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(width - 2),
		barFill:  r.NewStyle().Foreground(lipgloss.Color("10")),
		barEmpty: r.NewStyle().Foreground(lipgloss.Color("8")),
		severity: map[scoring.Severity]lipgloss.Style{
			scoring.SeveritySuccess: r.NewStyle().Foreground(lipgloss.Color("10")),
			scoring.SeverityWarning: r.NewStyle().Foreground(lipgloss.Color("3")),
			scoring.SeverityInfo:    r.NewStyle().Foreground(lipgloss.Color("14")),
		},
	}
}

// View renders the whole results page.
func (r *Renderer) View(s view.State) string {
	blocks := []string{r.header(s.Metadata)}

	if s.Overall != nil {
		blocks = append(blocks, r.gauge(*s.Overall))
	}
	if len(s.Badges) > 0 {
		blocks = append(blocks, r.badges(s.Badges))
	}
	if len(s.Cards) > 0 {
		blocks = append(blocks, r.cards(s.Cards))
	}
	blocks = append(blocks, r.quotes(s.Quotes))
	if len(s.Articles) > 0 {
		blocks = append(blocks, r.articles(s.Articles))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

func (r *Renderer) header(m view.Metadata) string {
	var b strings.Builder
	title := "Untitled article"
	if m.Title.Shown {
		title = m.Title.Text
	}
	b.WriteString(r.title.Render(title))

	for _, f := range []struct {
		name  string
		field view.Field
	}{
		{"Author", m.Author},
		{"Date", m.Date},
		{"Source", m.Source},
		{"Central claim", m.CentralClaim},
		{"Summary", m.ArticleSummary},
		{"Preview", m.PreviewText},
	} {
		if !f.field.Shown {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s", r.label.Render(f.name+":"), f.field.Text)
	}
	return b.String() + "\n"
}

func (r *Renderer) gauge(g view.Gauge) string {
	body := fmt.Sprintf("%s %s %s\n%s",
		r.label.Render("Overall credibility"),
		r.bar(g.BarWidth),
		scoring.PercentageText(g.Value),
		r.muted.Render(g.Tier.Label+": "+g.Tier.Description),
	)
	return r.panel.Render(body)
}

func (r *Renderer) bar(width float64) string {
	filled := int(math.Round(scoring.BarWidth(width) / 100 * barCells))
	return r.barFill.Render(strings.Repeat("█", filled)) + r.barEmpty.Render(strings.Repeat("░", barCells-filled))
}

func (r *Renderer) badges(badges []scoring.Badge) string {
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		parts = append(parts, r.severity[b.Severity].Render("["+b.Text+"]"))
	}
	return strings.Join(parts, " ") + "\n"
}

func (r *Renderer) cards(cards []view.Card) string {
	lines := []string{r.heading.Render("Analysis")}
	for i, c := range cards {
		marker := " "
		if c.Selectable {
			marker = "›"
		}
		lines = append(lines, fmt.Sprintf("%s %d. %-20s %s %5s",
			marker, i+1, c.Label, r.bar(c.BarWidth), c.PercentageText))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *Renderer) quotes(quotes []view.Quote) string {
	lines := []string{r.heading.Render("Key quotes")}
	for _, q := range quotes {
		if q.Placeholder {
			lines = append(lines, r.muted.Render(q.Text))
			continue
		}
		lines = append(lines, fmt.Sprintf("“%s”", q.Text))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *Renderer) articles(articles []view.Article) string {
	lines := []string{r.heading.Render("Recommended reading")}
	for _, a := range articles {
		line := "• " + r.label.Render(a.Title)
		if a.Domain != "" {
			line += " " + r.muted.Render("("+a.Domain+")")
		}
		lines = append(lines, line, "  "+a.URL)
		if a.Description != "" {
			lines = append(lines, "  "+a.Description)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Detail renders an open modal. value is the animated score being displayed.
func (r *Renderer) Detail(d modal.Detail, value int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s %s\n\n%s",
		r.title.Render(d.Label),
		r.bar(float64(value)),
		scoring.PercentageText(value),
		d.Explanation,
	)

	if d.Organization != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", r.label.Render("Organization"), d.Organization)
	}
	if len(d.UsefulQuotes) > 0 {
		fmt.Fprintf(&b, "\n\n%s", r.label.Render("Useful quotes"))
		for _, q := range d.UsefulQuotes {
			fmt.Fprintf(&b, "\n“%s”", q.Quote)
			if q.SuggestedUse != "" {
				fmt.Fprintf(&b, "\n  %s", r.muted.Render("Use: "+q.SuggestedUse))
			}
		}
	}
	return r.panel.Render(b.String()) + "\n"
}
