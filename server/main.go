// Command server previews a generated site locally: the gallery, its detail pages, and rendered articles.
//
// Configuration is through the environment:
//
//	SITE_DIR       directory to serve (default ".")
//	PORT           port to listen on (default 8080)
//	READ_TIMEOUT   (default 2s)
//	WRITE_TIMEOUT  (default 5s)
//	IDLE_TIMEOUT   (default 1m)
//	LOG_LEVEL      (default info)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gitlab.com/efronlicht/enve"
	"gitlab.com/efronlicht/sitetools/observability/http/accesslog"
	"gitlab.com/efronlicht/sitetools/observability/logging"
	"gitlab.com/efronlicht/sitetools/observability/meta"
	"gitlab.com/efronlicht/sitetools/server/middleware"
	"gitlab.com/efronlicht/sitetools/server/static"
	"go.uber.org/zap"
)

var start = time.Now()

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if err := Run(ctx); err != nil {
		cancel()
		log.Fatal(err)
	}
	cancel()
	log.Println("successful shutdown")
}

// newRouter maps requests to responses. We don't have complicated requests, so we handle the routing ourselves.
func newRouter(site fs.FS, m meta.Meta, logger *zap.Logger) http.Handler {
	metaJSON, err := json.Marshal(m)
	if err != nil {
		panic(err) // only strings, ints and times: can't fail.
	}
	files := static.Handler(site)
	var router http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimSuffix(r.URL.Path, "/")
		switch {
		case r.Method != http.MethodGet && r.Method != http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case p == "/debug/uptime":
			elapsed := m.Uptime()
			_, _ = fmt.Fprintf(w, "%3vh %02vm %02vs", math.Floor(elapsed.Hours()), math.Floor(math.Mod(elapsed.Minutes(), 60)), math.Floor(math.Mod(elapsed.Seconds(), 60)))
		case p == "/debug/meta":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(metaJSON)
		case p == "":
			http.Redirect(w, r, "./index.html", http.StatusPermanentRedirect)
		default:
			files(w, r)
		}
	})
	// apply middleware. middleware executes Last-In, First-Out.
	router = middleware.WriteGzip(router)
	router = accesslog.Server(router, logger)
	return router
}

// Run the server until ctx is done, then shut it down gracefully.
func Run(ctx context.Context) (err error) {
	logger := logging.New(meta.Process)
	defer logger.Sync()

	dir := enve.StringOr("SITE_DIR", ".")
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("site dir: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("site dir %s: not a directory", dir)
	}

	server := http.Server{
		Addr:         fmt.Sprintf(":%04d", enve.IntOr("PORT", 8080)),
		Handler:      newRouter(os.DirFS(dir), meta.Process, logger),
		ReadTimeout:  enve.DurationOr("READ_TIMEOUT", 2*time.Second),
		WriteTimeout: enve.DurationOr("WRITE_TIMEOUT", 5*time.Second),
		IdleTimeout:  enve.DurationOr("IDLE_TIMEOUT", time.Minute),
		// don't accept new connections if already shutting down
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	logger.Sugar().Infof("took %s to start", time.Since(start))
	logger.Info("serving http", zap.String("addr", server.Addr), zap.String("dir", dir))
	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()
	select {
	case err := <-errc: // couldn't even start: port in use, probably.
		return err
	case <-ctx.Done(): // wait for (ctrl+c)
	}

	logger.Debug(fmt.Sprintf("%v: shutting down server in %s", ctx.Err(), 2*time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
