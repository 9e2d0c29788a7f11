// Package static serves the files of a generated site.
package static

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Handler serves the files in site. Directories are served by their index.html.
// A request for /foo where foo.html exists is redirected to /foo.html: they forgot to add .html; show them where to find it.
func Handler(site fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(r.URL.Path, "/")
		if name == "" {
			name = "."
		}
		if !fs.ValidPath(name) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if name != "." && path.Ext(name) == "" {
			if _, err := fs.Stat(site, name+".html"); err == nil {
				http.Redirect(w, r, "/"+name+".html", http.StatusPermanentRedirect)
				return
			}
		}
		info, err := fs.Stat(site, name)
		if err == nil && info.IsDir() {
			name = path.Join(name, "index.html")
			info, err = fs.Stat(site, name)
		}
		if errors.Is(err, fs.ErrNotExist) {
			w.WriteHeader(http.StatusNotFound)
			return
		} else if err != nil {
			zap.L().Error("stat file", zap.Error(err), zap.String("file", name))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		setCacheControl(w.Header(), name)

		f, err := site.Open(name)
		if err != nil {
			zap.L().Error("open file", zap.Error(err), zap.String("file", name))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer f.Close()
		// best-case scenario: let net/http handle ranges, HEAD, and If-Modified-Since.
		if rs, ok := f.(io.ReadSeeker); ok {
			http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		if _, err := io.Copy(w, f); err != nil {
			zap.L().Error("failed to copy file", zap.Error(err), zap.String("file", name))
		}
	}
}

// fonts are immutable and large, so we can cache them for a long time.
// everything else is regenerated in place while previewing, so we don't cache it.
func setCacheControl(h http.Header, name string) {
	if path.Ext(name) == ".woff2" {
		h.Set("Cache-Control", "public, max-age=604800, immutable")
		return
	}
	h.Set("Cache-Control", "no-cache")
}
