package toc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// whitespace, as HTML defines it.
const htmlSpace = " \t\n\f\r"

// closeIndent goes between the generated block and the container's closing tag.
const closeIndent = "    "

// Apply replaces the document's table of contents with a fresh one built from its headings.
// On error the document is unchanged.
func Apply(doc *goquery.Document, opts Options) (Result, error) {
	content := doc.Find(opts.Content).First()
	if content.Length() == 0 {
		return Result{}, fmt.Errorf("%w: %q", ErrNoContent, opts.Content)
	}
	hs, err := headingsIn(content, opts.MinHeadings)
	if err != nil {
		return Result{}, err
	}
	res := Result{Entries: len(hs)}
	res.MinLevel, res.MaxLevel = Levels(hs)

	container := content.Closest(opts.Container)
	if container.Length() == 0 {
		container = doc.Find(opts.Container).First()
	}
	if container.Length() == 0 {
		container = content
	}
	nodes, err := html.ParseFragment(strings.NewReader(Build(hs, opts.Class)), container.Get(0))
	if err != nil {
		return Result{}, fmt.Errorf("parse generated table of contents: %w", err)
	}

	res.Removed = remove(doc.Find("nav").FilterFunction(func(_ int, s *goquery.Selection) bool { return s.HasClass(opts.Class) }))
	appendBlock(container.Get(0), nodes)
	return res, nil
}

// Rewrite parses an HTML document, applies the table of contents, and renders the result.
func Rewrite(r io.Reader, opts Options) ([]byte, Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, Result{}, fmt.Errorf("parse html: %w", err)
	}
	res, err := Apply(doc, opts)
	if err != nil {
		return nil, res, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Get(0)); err != nil {
		return nil, res, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), res, nil
}

// File rewrites the HTML file at path in place. The file is only written if Rewrite succeeds.
// A missing file gives an error wrapping fs.ErrNotExist.
func File(path string, opts Options) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	out, res, err := Rewrite(bytes.NewReader(b), opts)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	return res, nil
}

// remove detaches every node in navs along with the whitespace on either side of it, leaving a single newline behind.
func remove(navs *goquery.Selection) int {
	for _, n := range navs.Nodes {
		parent := n.Parent
		if parent == nil {
			continue
		}
		if p := n.PrevSibling; p != nil && p.Type == html.TextNode {
			if p.Data = strings.TrimRight(p.Data, htmlSpace); p.Data == "" {
				parent.RemoveChild(p)
			}
		}
		if s := n.NextSibling; s != nil && s.Type == html.TextNode {
			if s.Data = strings.TrimLeft(s.Data, htmlSpace); s.Data == "" {
				parent.RemoveChild(s)
			}
		}
		parent.InsertBefore(textNode("\n"), n)
		parent.RemoveChild(n)
	}
	return len(navs.Nodes)
}

// appendBlock adds nodes as the last children of container, after dropping the container's trailing whitespace.
// Trimming first keeps the output stable across repeated runs.
func appendBlock(container *html.Node, nodes []*html.Node) {
	for c := container.LastChild; c != nil && c.Type == html.TextNode; c = container.LastChild {
		if c.Data = strings.TrimRight(c.Data, htmlSpace); c.Data != "" {
			break
		}
		container.RemoveChild(c)
	}
	container.AppendChild(textNode("\n"))
	for _, n := range nodes {
		container.AppendChild(n)
	}
	container.AppendChild(textNode("\n" + closeIndent))
}

func textNode(s string) *html.Node { return &html.Node{Type: html.TextNode, Data: s} }
