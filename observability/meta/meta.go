// Package meta describes the running process: everything you might want to know about it, all in one place.
// This is too heavyweight to add into the logs everywhere, so commands log it once at startup (search for 'metadata dump')
// and the preview server serves it at /debug/meta.
package meta

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// Meta is application metadata.
type Meta struct {
	AppName    string
	InstanceID string // unique for each run
	StartTime  time.Time
	OS         struct {
		Host string
		PID  int
		User string
	}
	Runtime struct{ GOARCH, GOOS, Version string }
}

// Process describes this process. It's computed once, at startup.
var Process = New(filepath.Base(os.Args[0]))

// New collects metadata for the current process under the given app name.
// Lookups that fail (no hostname, no passwd entry in a container) are left empty.
func New(app string) Meta {
	m := Meta{
		AppName:    app,
		InstanceID: uuid.New().String(),
		StartTime:  time.Now(),
	}
	m.OS.Host, _ = os.Hostname()
	m.OS.PID = os.Getpid()
	if u, err := user.Current(); err == nil {
		m.OS.User = u.Username
	}
	m.Runtime.GOARCH, m.Runtime.GOOS, m.Runtime.Version = runtime.GOARCH, runtime.GOOS, runtime.Version()
	return m
}

// Uptime is the time since the process started.
func (m Meta) Uptime() time.Duration { return time.Since(m.StartTime) }
