package accesslog_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gitlab.com/efronlicht/sitetools/observability/http/accesslog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// setup builds a fresh server with the middleware applied, and the logs it writes to.
func setup(t *testing.T) (*httptest.Server, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		id, ok := accesslog.RequestID(r.Context())
		if !ok || id == uuid.Nil {
			t.Error("expected a request id in the handler's context")
		}
		w.Write([]byte("ping"))
	})
	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "500 Internal Server Error", 500) })
	mux.HandleFunc("/panic", func(w http.ResponseWriter, r *http.Request) { panic("oh no") })
	srv := httptest.NewServer(accesslog.Server(mux, zap.New(core)))
	t.Cleanup(srv.Close)
	return srv, logs
}

func TestServer(t *testing.T) {
	for _, tt := range []struct {
		path      string
		wantCode  int
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{"/ping", 200, zapcore.InfoLevel, "end: ok"},
		{"/nope", 404, zapcore.WarnLevel, "end: client error"},
		{"/error", 500, zapcore.ErrorLevel, "end: error"},
		{"/panic", 500, zapcore.ErrorLevel, "end: panic"},
	} {
		t.Run(tt.path, func(t *testing.T) {
			srv, logs := setup(t)
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.StatusCode)
			}
			id, err := uuid.Parse(resp.Header.Get(accesslog.RequestIDHeader))
			if err != nil {
				t.Fatalf("expected a request id header: %v", err)
			}

			if n := logs.FilterMessage("begin").Len(); n != 1 {
				t.Fatalf("expected one begin line, got %d", n)
			}
			end := logs.FilterMessage(tt.wantMsg).All()
			if len(end) != 1 {
				t.Fatalf("expected one %q line, got %v", tt.wantMsg, logs.All())
			}
			if end[0].Level != tt.wantLevel {
				t.Errorf("expected level %v, got %v", tt.wantLevel, end[0].Level)
			}
			fields := end[0].ContextMap()
			if fields["request_id"] != id.String() {
				t.Errorf("expected request_id %s in the log, got %v", id, fields["request_id"])
			}
			if tt.wantMsg == "end: panic" && !strings.Contains(fields["panic"].(string), "oh no") {
				t.Errorf("expected the panic value in the log, got %v", fields["panic"])
			}
		})
	}
}
