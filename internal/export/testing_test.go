package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/credibility-report/internal/types"
)

type placedLine struct {
	page int
	role FontRole
	y    float64
	text string
}

// recordingTypesetter wraps text at a fixed number of characters per line.
type recordingTypesetter struct {
	charsPerLine int
	page         int
	role         FontRole
	lines        []placedLine
	outputErr    error
}

func newRecordingTypesetter() *recordingTypesetter {
	return &recordingTypesetter{charsPerLine: 60}
}

func (r *recordingTypesetter) AddPage()              { r.page++ }
func (r *recordingTypesetter) SetFont(role FontRole) { r.role = role }

func (r *recordingTypesetter) SplitText(text string, _ float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, w := range words {
		if current != "" && len(current)+1+len(w) > r.charsPerLine {
			lines = append(lines, current)
			current = w
			continue
		}
		if current == "" {
			current = w
		} else {
			current += " " + w
		}
	}
	return append(lines, current)
}

func (r *recordingTypesetter) Line(_, y, _, _ float64, text string) {
	r.lines = append(r.lines, placedLine{page: r.page, role: r.role, y: y, text: text})
}

func (r *recordingTypesetter) Output(w io.Writer) error {
	if r.outputErr != nil {
		return r.outputErr
	}
	_, err := fmt.Fprintf(w, "%d pages", r.page)
	return err
}

type recordingLibrary struct {
	last *recordingTypesetter
}

func (l *recordingLibrary) NewTypesetter() Typesetter {
	l.last = newRecordingTypesetter()
	return l.last
}

func sampleReport() *types.Report {
	score := types.NewScore
	return &types.Report{
		Metadata: &types.Metadata{
			Title:  "Sleep and memory",
			Author: "A. Writer",
			Date:   "2024-03-01",
		},
		OverallCredibility: score(78),
		HasPurpose:         true,
		BiasCheck:          &types.Check{OverallScore: score(60), Summary: "Mostly neutral."},
		EvidenceCheck:      &types.Check{OverallScore: score(70), Summary: "Well sourced."},
		AuthorCredibility:  &types.Check{OverallScore: score(72), Summary: "Established writer."},
		RelevancyCheck:     &types.Check{OverallScore: score(80), Summary: "Recent."},
		UsefulnessCheck:    &types.Check{OverallScore: score(55), Summary: "Useful for background."},
	}
}
