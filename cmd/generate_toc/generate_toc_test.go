package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/efronlicht/sitetools/toc"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	full = `<html><body><main><div class="content-article">
<h1 id="t">Title</h1><h2 id="a">A</h2><h2 id="b">B</h2><h3 id="c">C</h3>
</div></main></body></html>`
	short = `<html><body><main><div class="content-article"><h2 id="a">A</h2></div></main></body></html>`
	bare  = `<html><body><main><h2 id="a">A</h2></main></body></html>`
)

func TestRun(t *testing.T) {
	if testing.Short() {
		t.Skipf("SKIP %s: touches filesystem", t.Name())
	}
	dir := t.TempDir()
	for _, tt := range []struct {
		name, doc string // empty doc: don't create the file
		wantCode  int
		wantLogs  []string
		changed   bool
	}{
		{"ok", full, 0, []string{"generated TOC with 3 entries", "heading levels used: h2-h3"}, true},
		{"too few headings", short, 0, []string{"no table of contents needed"}, false},
		{"missing file", "", 1, []string{"file not found"}, false},
		{"no content element", bare, 1, []string{"generate table of contents"}, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".html")
			if tt.doc != "" {
				if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			core, logs := observer.New(zap.InfoLevel)
			if code := run(zap.New(core), path, toc.DefaultOptions()); code != tt.wantCode {
				t.Fatalf("expected exit status %d, got %d", tt.wantCode, code)
			}
			var msgs []string
			for _, e := range logs.All() {
				msgs = append(msgs, e.Message)
			}
			all := strings.Join(msgs, "\n")
			for _, want := range tt.wantLogs {
				if !strings.Contains(all, want) {
					t.Errorf("expected a log line containing %q, got:\n%s", want, all)
				}
			}
			if tt.doc == "" {
				return
			}
			b, _ := os.ReadFile(path)
			if changed := string(b) != tt.doc; changed != tt.changed {
				t.Fatalf("file changed: %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("TOC_CONTENT", "article")
	t.Setenv("TOC_MIN_HEADINGS", "5")
	got := optionsFromEnv(toc.DefaultOptions())
	want := toc.Options{Content: "article", Container: "main", Class: "toc", MinHeadings: 5}
	if got != want {
		t.Fatalf("optionsFromEnv() = %+v, want %+v", got, want)
	}
}
