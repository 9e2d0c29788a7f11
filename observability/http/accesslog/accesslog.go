// Package accesslog is HTTP server middleware that logs every request.
package accesslog

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id Server assigns to each request back to the client.
const RequestIDHeader = "X-Request-Id"

// Server gives each request a fresh request id, adds it to the request's context and the response headers, and
// logs the beginning (at debug) and end of the request. A panic in h is recovered, logged with its stack,
// and answered with a 500.
func Server(h http.Handler, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.New()
		logger := logger.With(zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Stringer("request_id", id))
		w.Header().Set(RequestIDHeader, id.String())
		logger.Debug("begin",
			zap.String("user-agent", r.UserAgent()),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("accept-encoding", r.Header.Get("Accept-Encoding")),
		)

		lw := &writer{ResponseWriter: w}
		defer func() {
			elapsed := time.Since(start)
			if p := recover(); p != nil {
				if lw.statusCode == 0 {
					lw.WriteHeader(http.StatusInternalServerError)
				}
				logger.Error("end: panic", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()), zap.Int("status_code", lw.statusCode))
				return
			}
			if lw.statusCode == 0 { // nothing written at all: net/http sends a 200.
				lw.statusCode = http.StatusOK
			}
			fields := []zap.Field{zap.Int("status_code", lw.statusCode), zap.Int("content_length", lw.contentLength), zap.Duration("elapsed", elapsed)}
			switch {
			case lw.statusCode >= 500:
				logger.Error("end: error", fields...)
			case lw.statusCode >= 400:
				logger.Warn("end: client error", fields...)
			default:
				logger.Info("end: ok", fields...)
			}
		}()
		h.ServeHTTP(lw, r.WithContext(saveCtx(r.Context(), id)))
	}
}

type ctxKey struct{}

func saveCtx(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID retrieves the id Server assigned to the request with this context, returning false if there is none.
func RequestID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok
}

// writer intercepts calls to WriteHeader() and Write(), recording the status code and the total number of bytes written to the response body.
type writer struct {
	http.ResponseWriter
	statusCode, contentLength int
}

func (w *writer) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.contentLength += n
	return n, err
}

func (w *writer) WriteHeader(statusCode int) {
	if w.statusCode == 0 {
		w.statusCode = statusCode
	}
	w.ResponseWriter.WriteHeader(statusCode)
}
