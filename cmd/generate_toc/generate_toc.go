// generate_toc adds a table of contents to an HTML article, replacing any it already has.
// See package toc for what goes in it and where it goes.
//
// Exit status is 0 on success and when the article doesn't need a table of contents (too few headings);
// 1 when the file or its content element is missing.
// Selectors can be overridden with TOC_CONTENT, TOC_CONTAINER, TOC_CLASS and TOC_MIN_HEADINGS.
//
// USAGE:
//
//	generate_toc writings/article.html
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/sitetools/observability/logging"
	"gitlab.com/efronlicht/sitetools/observability/meta"
	"gitlab.com/efronlicht/sitetools/toc"
	"go.uber.org/zap"
)

func main() {
	logger := logging.New(meta.Process)
	if len(os.Args) != 2 {
		logger.Error("expected exactly one command-line argument")
		logger.Fatal("USAGE: generate_toc <html_file>")
	}
	os.Exit(run(logger, os.Args[1], optionsFromEnv(toc.DefaultOptions())))
}

// run injects the table of contents into the file at path and returns the exit status.
func run(logger *zap.Logger, path string, opts toc.Options) int {
	logger = logger.With(zap.String("file", path))
	res, err := toc.File(path, opts)
	switch {
	case toc.Skipped(err):
		logger.Info("no table of contents needed; file left unchanged", zap.Error(err))
		return 0
	case errors.Is(err, fs.ErrNotExist):
		logger.Error("file not found", zap.Error(err))
		return 1
	case err != nil:
		logger.Error("generate table of contents", zap.Error(err))
		return 1
	}
	if res.Removed > 0 {
		logger.Info("removed existing TOC", zap.Int("count", res.Removed))
	}
	logger.Info(fmt.Sprintf("generated TOC with %d entries", res.Entries))
	logger.Info(fmt.Sprintf("heading levels used: h%d-h%d (normalized to top-level)", res.MinLevel, res.MaxLevel))
	return 0
}

func optionsFromEnv(opts toc.Options) toc.Options {
	opts.Content = enve.StringOr("TOC_CONTENT", opts.Content)
	opts.Container = enve.StringOr("TOC_CONTAINER", opts.Container)
	opts.Class = enve.StringOr("TOC_CLASS", opts.Class)
	opts.MinHeadings = enve.IntOr("TOC_MIN_HEADINGS", opts.MinHeadings)
	return opts
}
