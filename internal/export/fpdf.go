package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const customFamily = "ReportSans"

type fontSpec struct {
	style string
	size  float64
}

var fontSpecs = map[FontRole]fontSpec{
	RoleTitle:   {style: "B", size: 18},
	RoleHeading: {style: "B", size: 13},
	RoleBody:    {style: "", size: 11},
}

// fpdfLibrary produces fpdf-backed typesetters. font is an optional TTF used for
// every role; without it the built-in Helvetica is used.
type fpdfLibrary struct {
	font []byte
}

func (l *fpdfLibrary) NewTypesetter() Typesetter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Credibility Analysis Report", true)
	pdf.SetCreator("credview", true)

	ts := &fpdfTypesetter{pdf: pdf, family: "Helvetica"}
	if len(l.font) > 0 {
		pdf.AddUTF8FontFromBytes(customFamily, "", l.font)
		pdf.AddUTF8FontFromBytes(customFamily, "B", l.font)
		ts.family = customFamily
		ts.utf8 = true
	} else {
		ts.translate = pdf.UnicodeTranslatorFromDescriptor("")
	}
	return ts
}

type fpdfTypesetter struct {
	pdf       *fpdf.Fpdf
	family    string
	utf8      bool
	translate func(string) string
}

func (t *fpdfTypesetter) AddPage() {
	t.pdf.AddPage()
}

func (t *fpdfTypesetter) SetFont(role FontRole) {
	spec := fontSpecs[role]
	t.pdf.SetFont(t.family, spec.style, spec.size)
}

func (t *fpdfTypesetter) SplitText(text string, width float64) []string {
	if t.utf8 {
		text = basicPlane(text)
	} else {
		text = latin1(text)
	}
	lines := t.pdf.SplitText(text, width)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func (t *fpdfTypesetter) Line(x, y, width, height float64, text string) {
	if t.translate != nil {
		text = t.translate(text)
	}
	t.pdf.SetXY(x, y)
	t.pdf.CellFormat(width, height, text, "", 0, "L", false, 0, "")
}

func (t *fpdfTypesetter) Output(w io.Writer) error {
	if err := t.pdf.Error(); err != nil {
		return fmt.Errorf("typesetter: %w", err)
	}
	return t.pdf.Output(w)
}

var punctuation = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201c", "\"", "\u201d", "\"",
	"\u2013", "-", "\u2014", "-", "\u2026", "...",
)

// latin1 replaces runes the core fonts cannot measure.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, punctuation.Replace(s))
}

// basicPlane replaces runes outside the Basic Multilingual Plane, which the
// UTF-8 font width table does not cover.
func basicPlane(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return '\uFFFD'
		}
		return r
	}, s)
}
