package research

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// mainContentSelectors are tried in order; the first non-empty match
// wins. The trailing body fallback catches pages with no semantic
// content landmarks.
var mainContentSelectors = []string{
	"main",
	"article",
	"#content",
	".content",
	"#main",
	"body",
}

// ExtractMainContent parses markup and pulls the page title plus the
// text of the first populated main-content region. Script, style, and
// navigation chrome are stripped before text extraction.
func ExtractMainContent(html []byte) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript, nav, header, footer").Remove()

	for _, selector := range mainContentSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}
		text = collapseWhitespace(selection.Text())
		if text != "" {
			break
		}
	}
	return title, text, nil
}

// collapseWhitespace folds whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
