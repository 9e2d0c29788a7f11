package toc

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Headings finds the eligible headings of the document's article body.
// See the package documentation for which headings are eligible.
func Headings(doc *goquery.Document, opts Options) ([]Heading, error) {
	content := doc.Find(opts.Content).First()
	if content.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoContent, opts.Content)
	}
	return headingsIn(content, opts.MinHeadings)
}

func headingsIn(content *goquery.Selection, minHeadings int) ([]Heading, error) {
	var hs []Heading
	seen := make(map[string]bool)
	content.Find("h1[id], h2[id], h3[id]").Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimSpace(s.AttrOr("id", ""))
		if id == "" || seen[id] { // a second anchor with the same id is unreachable anyways.
			return
		}
		seen[id] = true
		hs = append(hs, Heading{
			Level: int(goquery.NodeName(s)[1] - '0'),
			ID:    id,
			Text:  strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	if len(hs) == 0 {
		return nil, ErrNoHeadings
	}
	// the first h1 with an id is the title when nothing comes before it.
	if hs[0].Level == 1 {
		hs = hs[1:]
	}
	switch {
	case len(hs) == 0:
		return nil, ErrOnlyTitle
	case len(hs) < minHeadings:
		return nil, fmt.Errorf("%w: found %d, need at least %d", ErrTooFewHeadings, len(hs), minHeadings)
	}
	return hs, nil
}
