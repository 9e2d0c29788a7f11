package gallery

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template/parse"
)

// Entry is one thumbnail on the index page.
type Entry struct {
	Index int
	Name  string
	Page  string // link to the detail page, relative to the index
	Thumb string // thumbnail, relative to the index
}

var entryTemplate = template.Must(template.New("entry").Parse(
	`<a href="{{.Page}}"><img src="{{.Thumb}}"><div class="pointer" id="{{.Index}}"></div><div class="zoom"></div></a>` + "\n",
))

// RenderIndex writes the index page: header, one entry per photo, footer.
// The header and footer are copied byte-for-byte.
func RenderIndex(w io.Writer, header, footer []byte, entries []Entry) error {
	if _, err := w.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := entryTemplate.Execute(w, e); err != nil {
			return fmt.Errorf("render index entry %d: %w", e.Index, err)
		}
	}
	_, err := w.Write(footer)
	return err
}

// DetailPage is the data a detail page template executes with.
// All links are relative to the detail page.
type DetailPage struct {
	Index, Total int
	Name         string
	Prev         string // previous photo; the index's #1 anchor on the first page
	Back         string // this photo's anchor on the index
	Next         string // next photo; the index's #N-1 anchor on the last page
	Image        string // the full-size photo
	Thumb        string
}

// blocks every detail template can use (and override) by name.
const detailBlocks = `{{define "nav"}}<a href="{{.Prev}}" class="prev">PREV</a>
<a href="{{.Back}}">BACK</a>
<a href="{{.Next}}" class="next">NEXT</a>
{{end}}{{define "image"}}<img src="{{.Image}}">{{end}}`

var baseDetail = template.Must(template.New("blocks").Parse(detailBlocks))

// ErrIncompleteDetail is returned by ParseDetail for a template that leaves out the navigation links or the photo.
var ErrIncompleteDetail = errors.New("detail template is missing placeholders")

// ParseDetail parses the text of a detail page template. Besides the fields of DetailPage, it may use
//
//	{{template "nav" .}}   the PREV, BACK and NEXT links, one per line
//	{{template "image" .}} the full-size photo
//
// Every page needs its links and its photo: the template must reach .Prev, .Back, .Next and .Image,
// directly or through those blocks.
func ParseDetail(text string) (*template.Template, error) {
	t, err := baseDetail.Clone()
	if err != nil {
		return nil, err
	}
	if t, err = t.New("detail").Parse(text); err != nil {
		return nil, err
	}
	used := fieldsUsed(t, "detail")
	var missing []string
	for _, field := range []string{"Prev", "Back", "Next", "Image"} {
		if !used[field] {
			missing = append(missing, "."+field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: never uses %s (try {{template \"nav\" .}} and {{template \"image\" .}})", ErrIncompleteDetail, strings.Join(missing, ", "))
	}
	return t, nil
}

// fieldsUsed collects the names of the fields of dot that the named template refers to,
// following {{template}} calls into the rest of t's set.
func fieldsUsed(t *template.Template, name string) map[string]bool {
	used := make(map[string]bool)
	visited := make(map[string]bool)
	var walk func(n parse.Node)
	walkTemplate := func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		if tt := t.Lookup(name); tt != nil && tt.Tree != nil {
			walk(tt.Tree.Root)
		}
	}
	walkBranch := func(b *parse.BranchNode) {
		walk(b.Pipe)
		walk(b.List)
		walk(b.ElseList)
	}
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walk(c)
			}
		case *parse.PipeNode:
			if n == nil {
				return
			}
			for _, c := range n.Cmds {
				walk(c)
			}
		case *parse.CommandNode:
			for _, arg := range n.Args {
				walk(arg)
			}
		case *parse.ActionNode:
			walk(n.Pipe)
		case *parse.FieldNode:
			used[n.Ident[0]] = true
		case *parse.VariableNode: // $.Prev
			if len(n.Ident) > 1 && n.Ident[0] == "$" {
				used[n.Ident[1]] = true
			}
		case *parse.IfNode:
			walkBranch(&n.BranchNode)
		case *parse.RangeNode:
			walkBranch(&n.BranchNode)
		case *parse.WithNode:
			walkBranch(&n.BranchNode)
		case *parse.TemplateNode:
			walk(n.Pipe)
			walkTemplate(n.Name)
		}
	}
	walkTemplate(name)
	return used
}

// layout holds the links between the directories of a Config.
type layout struct {
	indexToPages, indexToThumbs string // from the index's directory
	pagesToIndex                string // the index page itself, from the pages directory
	pagesToImages, pagesToThumbs string
}

func newLayout(cfg Config) layout {
	indexDir := filepath.Dir(cfg.IndexPath)
	return layout{
		indexToPages:  relURL(indexDir, cfg.PagesDir),
		indexToThumbs: relURL(indexDir, cfg.ThumbDir),
		pagesToIndex:  relURL(cfg.PagesDir, cfg.IndexPath),
		pagesToImages: relURL(cfg.PagesDir, cfg.SourceDir),
		pagesToThumbs: relURL(cfg.PagesDir, cfg.ThumbDir),
	}
}

func (l layout) entries(images []Image) []Entry {
	entries := make([]Entry, len(images))
	for i, img := range images {
		entries[i] = Entry{
			Index: img.Index,
			Name:  img.Name,
			Page:  path.Join(l.indexToPages, pageName(img.Index)),
			Thumb: path.Join(l.indexToThumbs, img.Name),
		}
	}
	return entries
}

// detail builds the page for images[n]. The first page's PREV and the last page's NEXT
// lead back to the index instead of to a page that doesn't exist.
func (l layout) detail(images []Image, n int) DetailPage {
	last := len(images) - 1
	anchor := func(i int) string { return l.pagesToIndex + "#" + strconv.Itoa(i) }
	p := DetailPage{
		Index: n,
		Total: len(images),
		Name:  images[n].Name,
		Prev:  pageName(n - 1),
		Back:  anchor(n),
		Next:  pageName(n + 1),
		Image: path.Join(l.pagesToImages, images[n].Name),
		Thumb: path.Join(l.pagesToThumbs, images[n].Name),
	}
	if n == 0 {
		p.Prev = anchor(1)
	}
	if n == last {
		p.Next = anchor(last)
	}
	return p
}

func pageName(n int) string { return strconv.Itoa(n) + ".html" }

// relURL is the slash-separated path to target from the directory from.
func relURL(from, target string) string {
	if abs, err := filepath.Abs(from); err == nil {
		from = abs
	}
	if abs, err := filepath.Abs(target); err == nil {
		target = abs
	}
	rel, err := filepath.Rel(from, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
