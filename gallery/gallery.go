// Package gallery generates the photo pages of the site: a square thumbnail for every photo,
// an index page that shows the thumbnails, and one detail page per photo with PREV, BACK and NEXT links.
//
// Photos are shown newest-first, where "newest" means "largest file name": name your photos by date.
// Positions, not names, number the detail pages (photos/0.html is the first photo on the index).
package gallery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Config says where everything lives. All paths are relative to the working directory unless absolute.
type Config struct {
	SourceDir      string   // full-size photos
	ThumbDir       string   // thumbnails, same file names as SourceDir
	PagesDir       string   // detail pages, 0.html ... N-1.html
	IndexPath      string   // the index page
	IndexHeader    string   // copied verbatim to the top of the index
	IndexFooter    string   // copied verbatim to the bottom of the index
	DetailTemplate string   // html/template for detail pages; see ParseDetail
	Extensions     []string // which files in SourceDir are photos; matched case-insensitively

	ThumbWidth, ThumbHeight int
	JPEGQuality             int // 1-100
}

// DefaultConfig is the layout of the site's repository.
func DefaultConfig() Config {
	return Config{
		SourceDir:      "photos_img",
		ThumbDir:       "photos_img_small",
		PagesDir:       "photos",
		IndexPath:      "photo.html",
		IndexHeader:    "photo_template.html",
		IndexFooter:    "photo_template_footer.html",
		DetailTemplate: filepath.Join("photos", "single_photo_template.html"),
		Extensions:     []string{".jpeg", ".jpg"},
		ThumbWidth:     500,
		ThumbHeight:    500,
		JPEGQuality:    95,
	}
}

// Image is one photo, at its display position.
type Image struct {
	Index int    // position on the index page and number of the detail page
	Name  string // file name in SourceDir
}

// Result counts what Generate wrote.
type Result struct {
	Images, Thumbnails, Pages int
}

// List returns the photos in dir in display order: file names sorted, then reversed.
func List(dir string, exts []string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && hasExt(e.Name(), exts) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	slices.Reverse(names)
	images := make([]Image, len(names))
	for i, name := range names {
		images[i] = Image{Index: i, Name: name}
	}
	return images, nil
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// Generate builds the whole gallery. Any error aborts the run: there is no partial success.
// Inputs are all read before anything is written, so a missing template costs nothing.
func Generate(cfg Config, logger *zap.Logger) (res Result, err error) {
	images, err := List(cfg.SourceDir, cfg.Extensions)
	if err != nil {
		return res, err
	}
	res.Images = len(images)
	logger.Info("found images", zap.String("dir", cfg.SourceDir), zap.Int("count", len(images)))

	header, err := os.ReadFile(cfg.IndexHeader)
	if err != nil {
		return res, fmt.Errorf("read index header: %w", err)
	}
	footer, err := os.ReadFile(cfg.IndexFooter)
	if err != nil {
		return res, fmt.Errorf("read index footer: %w", err)
	}
	raw, err := os.ReadFile(cfg.DetailTemplate)
	if err != nil {
		return res, fmt.Errorf("read detail template: %w", err)
	}
	detail, err := ParseDetail(string(raw))
	if err != nil {
		return res, fmt.Errorf("%s: %w", cfg.DetailTemplate, err)
	}

	for _, dir := range []string{cfg.ThumbDir, cfg.PagesDir, filepath.Dir(cfg.IndexPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return res, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	for _, img := range images {
		src, dst := filepath.Join(cfg.SourceDir, img.Name), filepath.Join(cfg.ThumbDir, img.Name)
		if err := Thumbnail(src, dst, cfg.ThumbWidth, cfg.ThumbHeight, cfg.JPEGQuality); err != nil {
			return res, err
		}
		res.Thumbnails++
		logger.Debug("wrote thumbnail", zap.String("src", src), zap.String("dst", dst))
	}

	l := newLayout(cfg)
	buf := new(bytes.Buffer)
	if err := RenderIndex(buf, header, footer, l.entries(images)); err != nil {
		return res, err
	}
	if err := os.WriteFile(cfg.IndexPath, buf.Bytes(), 0o644); err != nil {
		return res, fmt.Errorf("write index: %w", err)
	}
	logger.Info("wrote index", zap.String("path", cfg.IndexPath), zap.Int("entries", len(images)))

	for _, img := range images {
		buf.Reset()
		if err := detail.Execute(buf, l.detail(images, img.Index)); err != nil {
			return res, fmt.Errorf("render detail page %d: %w", img.Index, err)
		}
		dst := filepath.Join(cfg.PagesDir, fmt.Sprintf("%d.html", img.Index))
		if err := os.WriteFile(dst, buf.Bytes(), 0o644); err != nil {
			return res, fmt.Errorf("write detail page: %w", err)
		}
		res.Pages++
	}
	logger.Info("wrote detail pages", zap.String("dir", cfg.PagesDir), zap.Int("count", res.Pages))
	return res, nil
}
