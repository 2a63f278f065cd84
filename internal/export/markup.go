package export

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// knownTag matches an opening, closing or self-closing tag of the elements
	// summaries are formatted with.
	knownTag = regexp.MustCompile(`(?i)^</?(a|b|blockquote|br|code|div|em|h[1-6]|i|li|ol|p|script|small|span|strong|style|sub|sup|u|ul)(\s[^<>]*)?/?>`)
	entity   = regexp.MustCompile(`(?i)^&(#[0-9]+|#x[0-9a-f]+|[a-z][a-z0-9]*);`)
)

// flattenMarkup returns the text content of s with runs of whitespace collapsed.
// Only known tags and entities are treated as markup; any other "<" or "&" is
// kept as literal text.
func flattenMarkup(s string) string {
	escaped, hasMarkup := escapeLiterals(s)
	if !hasMarkup {
		return collapseSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escaped))
	if err != nil {
		return collapseSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br, p, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return collapseSpace(doc.Text())
}

// escapeLiterals escapes every "<" and "&" that does not start a known tag or
// entity, and reports whether any markup was found.
func escapeLiterals(s string) (string, bool) {
	var b strings.Builder
	hasMarkup := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			if m := knownTag.FindString(s[i:]); m != "" {
				b.WriteString(m)
				i += len(m) - 1
				hasMarkup = true
				continue
			}
			b.WriteString("&lt;")
		case '&':
			if m := entity.FindString(s[i:]); m != "" {
				b.WriteString(m)
				i += len(m) - 1
				hasMarkup = true
				continue
			}
			b.WriteString("&amp;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String(), hasMarkup
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
