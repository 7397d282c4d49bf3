// Package preview serves the generated site locally and rebuilds it whenever
// the book changes on disk.
package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/bookpages/internal/build"
	"git.home.luguber.info/inful/bookpages/internal/config"
	"git.home.luguber.info/inful/bookpages/internal/logfields"
)

const debounceInterval = 300 * time.Millisecond

// buildStatus tracks the most recent build outcome for /healthz.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (err error, hasGoodBuild bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.hasGoodBuild
}

// Server watches the book directory and serves the output directory.
type Server struct {
	cfg     *config.Config
	svc     *build.Service
	status  *buildStatus
	metrics *metrics
}

// NewServer creates a preview server for the given configuration.
func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg:     cfg,
		svc:     build.NewService(cfg),
		status:  &buildStatus{},
		metrics: newMetrics(),
	}
}

// Run builds once, then serves the site on addr and rebuilds on changes until
// ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	absBook, err := s.resolveBookDir()
	if err != nil {
		return err
	}

	// Initial build. A failing first build is not fatal: the watcher keeps
	// running so the author can fix the source and see the rebuild.
	s.rebuild()

	httpServer := s.startHTTP(addr)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, absBook); err != nil {
		return err
	}

	rebuildReq := make(chan struct{}, 1)
	trigger := newDebouncer(rebuildReq)
	go s.rebuildWorker(ctx, rebuildReq)

	slog.Info("Preview server listening",
		logfields.URL("http://"+addr),
		logfields.Source(absBook))

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleFileEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(werr))
		}
	}
}

func (s *Server) resolveBookDir() (string, error) {
	absBook, err := filepath.Abs(s.cfg.Book)
	if err != nil {
		return "", fmt.Errorf("resolve book dir: %w", err)
	}
	if st, statErr := os.Stat(absBook); statErr != nil || !st.IsDir() {
		return "", fmt.Errorf("book dir not found or not a directory: %s", absBook)
	}
	return absBook, nil
}

func (s *Server) startHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Output.BaseDirectory)))
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", s.metrics.handler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Preview server failed", logfields.Error(err))
		}
	}()
	return httpServer
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	lastErr, hasGoodBuild := s.status.snapshot()
	switch {
	case lastErr != nil && !hasGoodBuild:
		http.Error(w, "no successful build yet: "+lastErr.Error(), http.StatusServiceUnavailable)
	case lastErr != nil:
		// Serving the last good build while the latest rebuild failed.
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "degraded: %v\n", lastErr)
	default:
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}
}

// newDebouncer returns a trigger that coalesces bursts of filesystem events
// into at most one rebuild request per debounce interval.
func newDebouncer(rebuildReq chan<- struct{}) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceInterval, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
}

func (s *Server) rebuildWorker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-rebuildReq:
			if !ok {
				return
			}
			slog.Info("Change detected; rebuilding site")
			s.rebuild()
		}
	}
}

func (s *Server) rebuild() {
	start := time.Now()
	s.metrics.rebuildsTotal.Inc()
	if _, err := s.svc.Run(); err != nil {
		s.metrics.rebuildsFailed.Inc()
		s.status.setError(err)
		slog.Warn("Rebuild failed", logfields.Error(err))
		return
	}
	s.metrics.buildDuration.Observe(time.Since(start).Seconds())
	s.status.setSuccess()
}

func (s *Server) handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	// New directories must be added to the watch set or edits inside them
	// go unnoticed.
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (s *Server) shutdown(httpServer *http.Server) error {
	slog.Info("Shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(filepath.Base(path), ".") && path != root {
				return filepath.SkipDir
			}
			if addErr := w.Add(path); addErr != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(addErr))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters out events from hidden files and editor temp or
// swap files so saves do not trigger double rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	if base == "Thumbs.db" {
		return true
	}
	return false
}
