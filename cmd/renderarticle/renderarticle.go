// renderarticle searches a directory for markdown articles and renders them as HTML pages, table of contents included, to the output directory.
// Images next to the articles are copied as-is, and DST/index.html links to every article by title.
//
// USAGE:
//
//	renderarticle SRC DST
package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gitlab.com/efronlicht/sitetools/article"
	"gitlab.com/efronlicht/sitetools/observability/logging"
	"gitlab.com/efronlicht/sitetools/observability/meta"
	"go.uber.org/zap"
)

func main() {
	logger := logging.New(meta.Process)
	if len(os.Args) != 3 {
		logger.Error("expected two command-line arguments")
		logger.Fatal("USAGE: renderarticle srcdir dstdir")
	}
	srcDir, err := filepath.Abs(os.Args[1])
	if err != nil {
		logger.Fatal("resolve srcdir", zap.Error(err))
	}
	dstDir, err := filepath.Abs(os.Args[2])
	if err != nil {
		logger.Fatal("resolve dstdir", zap.Error(err))
	}
	rendered, err := renderDir(logger, srcDir, dstDir)
	if err != nil {
		logger.Fatal("render articles", zap.Error(err))
	}

	const format = "%s\t->\t%s\t%s\n"
	tw := tabwriter.NewWriter(os.Stderr, 2, 2, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintf(tw, format, "src", "dst", "toc")
	fmt.Fprintf(tw, format, strings.Repeat("-", 20), strings.Repeat("-", 20), "---")
	for _, r := range rendered {
		fmt.Fprintf(tw, format, r.src, r.dst, r.toc)
	}
}

type rendered struct{ src, dst, toc, title string }

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html><html><head>
<title>index.html</title>
<meta charset="utf-8"/>
<link rel="stylesheet" type="text/css" href="/s.css"/>
</head>
<body>
<h1> articles </h1>
{{range .}}<h4><a href="{{.Href}}">{{.Title}}</a></h4>
{{end}}</body></html>
`))

// writeIndex writes dstDir/index.html, linking to the rendered articles in the order they were rendered.
func writeIndex(dstDir string, rendered []rendered) (string, error) {
	type link struct{ Href, Title string }
	var links []link
	for _, r := range rendered {
		if r.title != "" {
			links = append(links, link{Href: filepath.Base(r.dst), Title: r.title})
		}
	}
	dst := filepath.Join(dstDir, "index.html")
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if err := indexTemplate.Execute(f, links); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", dst, err)
	}
	return dst, f.Close()
}

// renderDir walks srcDir, rendering every .md file to dstDir/NAME.html and copying images.
// Output is flat: dstDir has no subdirectories. dstDir itself is skipped if it's inside srcDir.
func renderDir(logger *zap.Logger, srcDir, dstDir string) ([]rendered, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, err
	}
	logger.Info("scanning", zap.String("src", srcDir), zap.String("dst", dstDir))
	var out []rendered
	walkFunc := func(srcPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if srcPath == dstDir || d.Name() == "vendor" {
				return fs.SkipDir
			}
			return nil
		}
		switch filepath.Ext(srcPath) {
		default:
			return nil
		case ".gif", ".png", ".jpg", ".jpeg":
			b, err := os.ReadFile(srcPath)
			if err != nil {
				return err
			}
			dstPath := filepath.Join(dstDir, d.Name())
			if err := os.WriteFile(dstPath, b, 0o644); err != nil {
				return err
			}
			out = append(out, rendered{src: srcPath, dst: dstPath, toc: "-"})
			return nil
		case ".md":
			md, err := os.ReadFile(srcPath)
			if err != nil {
				return err
			}
			page, res, err := article.Render(md, srcPath)
			if err != nil {
				return err
			}
			dstPath := filepath.Join(dstDir, strings.TrimSuffix(d.Name(), ".md")+".html")
			if err := os.WriteFile(dstPath, page, 0o644); err != nil {
				return err
			}
			logger.Debug("rendered", zap.String("src", srcPath), zap.String("dst", dstPath), zap.Int("toc_entries", res.Entries))
			out = append(out, rendered{src: srcPath, dst: dstPath, toc: fmt.Sprint(res.Entries), title: article.Title(md, srcPath)})
			return nil
		}
	}
	if err := filepath.WalkDir(srcDir, walkFunc); err != nil {
		return out, err
	}
	index, err := writeIndex(dstDir, out)
	if err != nil {
		return out, err
	}
	logger.Info("wrote index", zap.String("dst", index))
	return out, nil
}
