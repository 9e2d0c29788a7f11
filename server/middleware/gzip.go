// Package middleware holds the preview server's HTTP middleware.
package middleware

import (
	"compress/gzip"
	"net/http"
	"path"
	"strings"
)

// already compressed; a layer of gzip won't help.
var compressed = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".woff2": true, ".zip": true, ".gz": true}

// WriteGzip compresses the response body with GZip when it encounters an Accept-Encoding: gzip header.
// Images, fonts and archives are passed through untouched, and so are range requests.
func WriteGzip(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if compressed[strings.ToLower(path.Ext(r.URL.Path))] || r.Header.Get("Range") != "" {
			h.ServeHTTP(w, r)
			return
		}
		for _, v := range r.Header.Values("Accept-Encoding") {
			if strings.Contains(v, "gzip") {
				gz := &gzipWriter{ResponseWriter: w}
				defer gz.Close()
				h.ServeHTTP(gz, r)
				return
			}
		}
		h.ServeHTTP(w, r)
	}
}

// gzipWriter decides whether to compress when the header is written: responses that can't have a body
// (204, 304) go out as-is. Content-Length, if the handler set one, is dropped, since it's the uncompressed length.
type gzipWriter struct {
	http.ResponseWriter
	zip         *gzip.Writer
	wroteHeader bool
}

func (gz *gzipWriter) WriteHeader(statusCode int) {
	if gz.wroteHeader {
		return
	}
	gz.wroteHeader = true
	if statusCode != http.StatusNoContent && statusCode != http.StatusNotModified {
		gz.Header().Del("Content-Length")
		gz.Header().Set("Content-Encoding", "gzip")
		gz.zip = gzip.NewWriter(gz.ResponseWriter)
	}
	gz.ResponseWriter.WriteHeader(statusCode)
}

func (gz *gzipWriter) Write(p []byte) (int, error) {
	if !gz.wroteHeader {
		if gz.Header().Get("Content-Type") == "" { // sniff the plaintext, not the compressed bytes.
			gz.Header().Set("Content-Type", http.DetectContentType(p))
		}
		gz.WriteHeader(http.StatusOK)
	}
	if gz.zip == nil {
		return gz.ResponseWriter.Write(p)
	}
	return gz.zip.Write(p)
}

func (gz *gzipWriter) Close() error {
	if gz.zip == nil {
		return nil
	}
	return gz.zip.Close()
}
