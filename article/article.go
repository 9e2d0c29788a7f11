// Package article renders the site's markdown articles as complete HTML pages:
// highlighted code, the content wrapped in the article layout, and a table of contents.
package article

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/sourcegraph/syntaxhighlight"
	"gitlab.com/efronlicht/sitetools/toc"
)

// layout is what the toc package's DefaultOptions expect to find.
const layout = `<main><div class="content-article"></div></main>`

// Title is the text of the article's first level-one heading, or the file name without .md if there isn't one.
// Lines inside code blocks are never headings: a shell comment is not a title.
func Title(md []byte, name string) string {
	rendered := markdown.ToHTML(markdown.NormalizeNewlines(md), newParser(), nil)
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered)); err == nil {
		if title := strings.Join(strings.Fields(doc.Find("h1").First().Text()), " "); title != "" {
			return title
		}
	}
	return strings.TrimSuffix(filepath.Base(name), ".md")
}

// parsers carry state: a fresh one per document.
func newParser() *parser.Parser {
	return parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
}

// Render turns the markdown article md, read from the file name, into a complete HTML page.
// Articles with too few headings for a table of contents are rendered without one; check Result.Entries.
func Render(md []byte, name string) ([]byte, toc.Result, error) {
	md = markdown.NormalizeNewlines(md)
	renderer := html.NewRenderer(html.RendererOptions{
		Icon:  "/favicon.ico",
		CSS:   "/s.css",
		Flags: html.CommonFlags | html.CompletePage,
		Title: Title(md, name),
	})
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markdown.ToHTML(md, newParser(), renderer)))
	if err != nil {
		return nil, toc.Result{}, fmt.Errorf("%s: parse rendered markdown: %w", name, err)
	}

	// find code-parts via css selector and replace them with highlighted versions
	var highlightErr error
	doc.Find(`code[class*="language-"]`).Each(func(_ int, s *goquery.Selection) {
		b, err := syntaxhighlight.AsHTML([]byte(s.Text()))
		if err != nil {
			highlightErr = fmt.Errorf("%s: highlight code block: %w", name, err)
			return
		}
		s.SetHtml(string(b))
	})
	if highlightErr != nil {
		return nil, toc.Result{}, highlightErr
	}

	// parse the layout in the context of <body>, then move the article into it.
	body := doc.Find("body")
	contents := body.Contents()
	body.PrependHtml(layout)
	doc.Find("div.content-article").First().AppendSelection(contents)

	res, err := toc.Apply(doc, toc.DefaultOptions())
	if err != nil && !toc.Skipped(err) {
		return nil, res, fmt.Errorf("%s: %w", name, err)
	}
	out, err := doc.Html()
	if err != nil {
		return nil, res, fmt.Errorf("%s: render html: %w", name, err)
	}
	return []byte(out), res, nil
}
