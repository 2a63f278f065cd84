package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jonathan/credibility-report/internal/types"
)

// FontRole distinguishes the three text styles of the document export.
type FontRole int

// Font roles
const (
	RoleTitle FontRole = iota
	RoleHeading
	RoleBody
)

// Page geometry in millimetres (A4 portrait).
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 20.0
	ContentWidth = PageWidth - 2*Margin
	PageBottom   = PageHeight - Margin
)

// LineHeight returns the vertical advance of one line in a role.
func LineHeight(role FontRole) float64 {
	switch role {
	case RoleTitle:
		return 10
	case RoleHeading:
		return 7
	default:
		return 5.5
	}
}

// Typesetter places measured text on pages. Line receives lines produced by
// SplitText with the same role selected.
type Typesetter interface {
	AddPage()
	SetFont(role FontRole)
	SplitText(text string, width float64) []string
	Line(x, y, width, height float64, text string)
	Output(w io.Writer) error
}

// layout tracks the vertical cursor and starts a new page whenever the next
// line would pass the printable height.
type layout struct {
	ts    Typesetter
	y     float64
	pages int
}

func newLayout(ts Typesetter) *layout {
	l := &layout{ts: ts}
	l.newPage()
	return l
}

func (l *layout) newPage() {
	l.ts.AddPage()
	l.pages++
	l.y = Margin
}

func (l *layout) write(role FontRole, text string) {
	l.ts.SetFont(role)
	h := LineHeight(role)
	for _, line := range l.ts.SplitText(text, ContentWidth) {
		if l.y+h > PageBottom {
			l.newPage()
			l.ts.SetFont(role)
		}
		l.ts.Line(Margin, l.y, ContentWidth, h, line)
		l.y += h
	}
}

func (l *layout) gap(h float64) {
	l.y += h
	if l.y > PageBottom {
		l.newPage()
	}
}

// Document lays out the report on ts and returns the rendered bytes.
func Document(ts Typesetter, r *types.Report, now time.Time) ([]byte, error) {
	c := buildContent(r, now)
	l := newLayout(ts)

	l.write(RoleTitle, ReportTitle)
	l.write(RoleBody, "Generated: "+c.Generated)
	l.gap(4)

	l.write(RoleHeading, "Article Information")
	for _, f := range c.Metadata {
		l.write(RoleBody, f.Label+": "+f.Value)
	}
	l.gap(4)

	l.write(RoleHeading, c.Overall)
	l.gap(4)

	for _, s := range c.Sections {
		l.write(RoleHeading, s.Heading)
		l.write(RoleBody, s.Body)
		l.gap(3)
	}

	var buf bytes.Buffer
	if err := ts.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}
