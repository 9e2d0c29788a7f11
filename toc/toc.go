// Package toc builds a table of contents for an HTML article and injects it into the document.
//
// The article body is the first element matching Options.Content (div.content-article on the site).
// Every h1, h2 or h3 in the body that carries an id becomes one entry, except the title: the first
// heading, when it is an h1. The entries become a nested list inside <nav class="toc">, appended as the
// last child of the article's container (<main>). Any older <nav class="toc"> is removed first, so
// running the injector twice gives the same document as running it once.
//
// Basic usage:
//
//	res, err := toc.File("writings/article.html", toc.DefaultOptions())
//	if toc.Skipped(err) {
//		// nothing to do: too few headings.
//	}
package toc

import (
	"errors"
)

// Heading is one eligible heading of an article, in document order.
type Heading struct {
	Level int    // 1, 2, or 3
	ID    string // the heading's id attribute; never empty
	Text  string // text content with runs of whitespace collapsed to a single space
}

// Options controls where headings are read from and where the list goes.
type Options struct {
	Content     string // CSS selector for the article body. The first match is used.
	Container   string // CSS selector for the element the list is appended to.
	Class       string // class of the generated <nav>; navs with this class are replaced.
	MinHeadings int    // fewer eligible headings than this and the document is left alone.
}

// DefaultOptions matches the layout of the site's articles.
func DefaultOptions() Options {
	return Options{Content: "div.content-article", Container: "main", Class: "toc", MinHeadings: 3}
}

// Result describes a successful injection.
type Result struct {
	Entries            int // number of list items written
	MinLevel, MaxLevel int // heading levels seen; MinLevel is the top of the list
	Removed            int // number of older tables of contents removed
}

// ErrNoContent is returned when the document has no element matching Options.Content.
var ErrNoContent = errors.New("no content element found")

// ErrNoHeadings is returned when the article body has no h1-h3 with an id.
var ErrNoHeadings = errors.New("no headings with ids found")

// ErrOnlyTitle is returned when the only heading with an id is the title.
var ErrOnlyTitle = errors.New("no headings to include (only title found)")

// ErrTooFewHeadings is returned (wrapped, with the count) when there are fewer than Options.MinHeadings entries.
var ErrTooFewHeadings = errors.New("too few headings")

// Skipped reports whether err means "nothing to do" rather than a failure:
// the document is fine, it just doesn't need a table of contents.
func Skipped(err error) bool {
	return errors.Is(err, ErrNoHeadings) || errors.Is(err, ErrOnlyTitle) || errors.Is(err, ErrTooFewHeadings)
}

// Levels returns the smallest and largest heading level in hs, or (0, 0) for an empty slice.
func Levels(hs []Heading) (min, max int) {
	for i, h := range hs {
		if i == 0 || h.Level < min {
			min = h.Level
		}
		if h.Level > max {
			max = h.Level
		}
	}
	return min, max
}
