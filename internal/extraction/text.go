package extraction

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`\s+`)

// Text flattens an HTML (or RSS/XML, parsed leniently as HTML) body to
// lowercased plain text with collapsed whitespace, the form the field
// patterns are written against.
func Text(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		// The html parser is lenient; treat a hard failure as raw text
		return normalize(string(body))
	}

	doc.Find("script, style").Remove()

	return normalize(doc.Text())
}

func normalize(text string) string {
	text = strings.ToLower(text)
	text = innerWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
