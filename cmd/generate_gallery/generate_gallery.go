// generate_gallery builds the photo gallery of the site: a thumbnail for every photo, the index page, and one page per photo.
// Run it from the root of the site. The layout defaults to gallery.DefaultConfig; every path and size can be
// overridden through the environment:
//
//	GALLERY_SOURCE_DIR GALLERY_THUMB_DIR GALLERY_PAGES_DIR
//	GALLERY_INDEX GALLERY_INDEX_HEADER GALLERY_INDEX_FOOTER GALLERY_DETAIL_TEMPLATE
//	GALLERY_THUMB_WIDTH GALLERY_THUMB_HEIGHT GALLERY_JPEG_QUALITY
//
// USAGE:
//
//	generate_gallery
package main

import (
	"os"
	"time"

	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/sitetools/gallery"
	"gitlab.com/efronlicht/sitetools/observability/logging"
	"gitlab.com/efronlicht/sitetools/observability/meta"
	"go.uber.org/zap"
)

func main() {
	start := time.Now()
	logger := logging.New(meta.Process)
	if len(os.Args) != 1 {
		logger.Fatal("expected no command-line arguments; configure with GALLERY_* environment variables", zap.Strings("args", os.Args[1:]))
	}
	cfg := configFromEnv(gallery.DefaultConfig())
	res, err := gallery.Generate(cfg, logger)
	if err != nil {
		logger.Fatal("generate gallery", zap.Error(err))
	}
	logger.Info("done",
		zap.Int("images", res.Images),
		zap.Int("thumbnails", res.Thumbnails),
		zap.Int("pages", res.Pages),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func configFromEnv(cfg gallery.Config) gallery.Config {
	cfg.SourceDir = enve.StringOr("GALLERY_SOURCE_DIR", cfg.SourceDir)
	cfg.ThumbDir = enve.StringOr("GALLERY_THUMB_DIR", cfg.ThumbDir)
	cfg.PagesDir = enve.StringOr("GALLERY_PAGES_DIR", cfg.PagesDir)
	cfg.IndexPath = enve.StringOr("GALLERY_INDEX", cfg.IndexPath)
	cfg.IndexHeader = enve.StringOr("GALLERY_INDEX_HEADER", cfg.IndexHeader)
	cfg.IndexFooter = enve.StringOr("GALLERY_INDEX_FOOTER", cfg.IndexFooter)
	cfg.DetailTemplate = enve.StringOr("GALLERY_DETAIL_TEMPLATE", cfg.DetailTemplate)
	cfg.ThumbWidth = enve.IntOr("GALLERY_THUMB_WIDTH", cfg.ThumbWidth)
	cfg.ThumbHeight = enve.IntOr("GALLERY_THUMB_HEIGHT", cfg.ThumbHeight)
	cfg.JPEGQuality = enve.IntOr("GALLERY_JPEG_QUALITY", cfg.JPEGQuality)
	return cfg
}
