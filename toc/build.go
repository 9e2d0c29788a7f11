package toc

import (
	"strings"

	"golang.org/x/net/html"
)

// indentation of the generated block, chosen to sit inside <main> inside <body>.
const (
	navIndent  = "        "
	listIndent = navIndent + "    "
	itemIndent = listIndent + "    "
	step       = "    "
)

// Build renders hs as a nested list wrapped in <nav class="class">.
//
// The heading with the smallest level sits at depth 0. Each heading nests one level under the
// heading before it when it is deeper, and closes lists back up when it is shallower.
// A heading never nests more than one level below its predecessor: an h3 directly after an h1
// is one step down, not two, so every nested <ul> sits inside an <li>.
// The output is always balanced.
func Build(hs []Heading, class string) string {
	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString(itemIndent)
		b.WriteString(strings.Repeat(step, depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}
	b.WriteString(navIndent + `<nav class="` + html.EscapeString(class) + `">` + "\n")
	b.WriteString(listIndent + "<ul>\n")

	ds := depths(hs)
	prev := 0
	for i, h := range hs {
		depth := ds[i]
		for ; prev > depth; prev-- { // going up: close the nested list and the item that holds it.
			line(prev-1, "</ul>")
			line(prev-1, "</li>")
		}
		if depth > prev {
			line(prev, "<ul>")
		}
		item := `<li><a href="#` + html.EscapeString(h.ID) + `">` + html.EscapeString(h.Text) + `</a>`
		next := 0
		if i+1 < len(hs) {
			next = ds[i+1]
		}
		if next <= depth { // otherwise the next item's <ul> goes inside this <li>.
			item += "</li>"
		}
		line(depth, item)
		prev = depth
	}
	for ; prev > 0; prev-- {
		line(prev-1, "</ul>")
		line(prev-1, "</li>")
	}

	b.WriteString(listIndent + "</ul>\n")
	b.WriteString(navIndent + "</nav>")
	return b.String()
}

// depths gives the nesting depth of each heading: the number of earlier headings
// that enclose it (have a strictly smaller level and haven't been closed by a heading of equal or smaller level).
// For hierarchies without gaps, that's level - min level.
func depths(hs []Heading) []int {
	out := make([]int, len(hs))
	var open []int // levels of the enclosing headings, outermost first.
	for i, h := range hs {
		for len(open) > 0 && open[len(open)-1] >= h.Level {
			open = open[:len(open)-1]
		}
		out[i] = len(open)
		open = append(open, h.Level)
	}
	return out
}
