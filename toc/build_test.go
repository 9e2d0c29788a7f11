package toc

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestBuild(t *testing.T) {
	hs := []Heading{{2, "a", "A"}, {2, "b", "B"}, {3, "c", "C"}, {2, "d", "D"}}
	const want = `        <nav class="toc">
            <ul>
                <li><a href="#a">A</a></li>
                <li><a href="#b">B</a>
                <ul>
                    <li><a href="#c">C</a></li>
                </ul>
                </li>
                <li><a href="#d">D</a></li>
            </ul>
        </nav>`
	if got := Build(hs, "toc"); got != want {
		t.Fatalf("Build():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildClosesAtEnd(t *testing.T) {
	hs := []Heading{{1, "a", "A"}, {2, "b", "B"}, {3, "c", "C"}}
	const want = `        <nav class="toc">
            <ul>
                <li><a href="#a">A</a>
                <ul>
                    <li><a href="#b">B</a>
                    <ul>
                        <li><a href="#c">C</a></li>
                    </ul>
                    </li>
                </ul>
                </li>
            </ul>
        </nav>`
	if got := Build(hs, "toc"); got != want {
		t.Fatalf("Build():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildEscapes(t *testing.T) {
	got := Build([]Heading{{2, `x"y`, "<b> & co"}}, "toc")
	if !strings.Contains(got, `<li><a href="#x&#34;y">&lt;b&gt; &amp; co</a></li>`) {
		t.Fatalf("expected escaped item, got\n%s", got)
	}
}

func TestDepths(t *testing.T) {
	for _, tt := range []struct {
		levels []int
		want   []int
	}{
		{[]int{2, 2, 3, 2}, []int{0, 0, 1, 0}},
		{[]int{1, 2, 3, 3, 2, 1}, []int{0, 1, 2, 2, 1, 0}},
		{[]int{1, 3, 3, 2}, []int{0, 1, 1, 1}}, // h3 right after h1 is one step down, not two.
		{[]int{2, 1, 1}, []int{0, 0, 0}},
		{[]int{3, 2, 3}, []int{0, 0, 1}},
	} {
		t.Run(fmt.Sprint(tt.levels), func(t *testing.T) {
			got := depths(headingsAt(tt.levels...))
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("depths(%v) = %v, want %v", tt.levels, got, tt.want)
			}
		})
	}
}

// every sequence of levels from {1, 2, 3}, up to length 6, gives a well-formed list with one item per heading.
func TestBuildAlwaysBalanced(t *testing.T) {
	var walk func(levels []int)
	walk = func(levels []int) {
		if len(levels) > 0 {
			block := Build(headingsAt(levels...), "toc")
			if err := checkNesting(block); err != nil {
				t.Fatalf("levels %v: %v\n%s", levels, err, block)
			}
			if n := strings.Count(block, "<li>"); n != len(levels) {
				t.Fatalf("levels %v: expected %d items, got %d", levels, len(levels), n)
			}
		}
		if len(levels) == 6 {
			return
		}
		for l := 1; l <= 3; l++ {
			walk(append(levels[:len(levels):len(levels)], l))
		}
	}
	walk(nil)
}

func headingsAt(levels ...int) []Heading {
	hs := make([]Heading, len(levels))
	for i, l := range levels {
		hs[i] = Heading{Level: l, ID: fmt.Sprintf("h%d", i), Text: fmt.Sprintf("heading %d", i)}
	}
	return hs
}

// checkNesting makes sure every tag is closed in order, and that nav > ul > li > (a | ul) is the only nesting.
func checkNesting(block string) error {
	allowedParent := map[string]string{"nav": "", "ul": "nav li", "li": "ul", "a": "li"}
	z := html.NewTokenizer(strings.NewReader(block))
	var stack []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			if len(stack) != 0 {
				return fmt.Errorf("unclosed tags %v", stack)
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			allowed, ok := allowedParent[string(name)]
			if !ok {
				return fmt.Errorf("unexpected tag <%s>", name)
			}
			if !strings.Contains(" "+allowed+" ", " "+parent+" ") {
				return fmt.Errorf("<%s> inside <%s>", name, parent)
			}
			stack = append(stack, string(name))
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				return fmt.Errorf("unexpected </%s>; open: %v", name, stack)
			}
			stack = stack[:len(stack)-1]
		}
	}
}
