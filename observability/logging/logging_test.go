package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"gitlab.com/efronlicht/sitetools/observability/meta"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, tt := range []struct {
		level              string
		wantDump, wantInfo bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"not-a-level", false, true}, // falls back to info
	} {
		t.Run(tt.level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			buf := new(bytes.Buffer)
			m := meta.New("logtest")
			logger := newLogger(m, zapcore.AddSync(buf))
			logger.Info("hello")

			if got := strings.Contains(buf.String(), "metadata dump"); got != tt.wantDump {
				t.Errorf("metadata dump logged: %v, want %v\n%s", got, tt.wantDump, buf)
			}
			if got := strings.Contains(buf.String(), "hello"); got != tt.wantInfo {
				t.Errorf("info logged: %v, want %v\n%s", got, tt.wantInfo, buf)
			}
			if tt.wantInfo && !strings.Contains(buf.String(), m.InstanceID) {
				t.Errorf("expected the instance id on every line\n%s", buf)
			}
		})
	}
}

func TestNewLoggerRedirectsStdLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	buf := new(bytes.Buffer)
	logger := newLogger(meta.New("logtest"), zapcore.AddSync(buf))
	t.Cleanup(func() { log.SetOutput(os.Stderr); log.SetFlags(log.LstdFlags) })
	log.Print("from the standard library")
	_ = logger.Sync()
	if !strings.Contains(buf.String(), "from the standard library") {
		t.Fatalf("expected std log output in the zap logger, got\n%s", buf)
	}
}
