package preview

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/bookpages/internal/assemble"
	"git.home.luguber.info/inful/bookpages/internal/config"
)

func TestShouldIgnoreEvent(t *testing.T) {
	ignored := []string{
		"/book/.obsidian",
		"/book/.hidden.md",
		"/book/notes.md~",
		"/book/.notes.md.swp",
		"/book/.notes.md.swx",
		"/book/.#notes.md",
		"/book/#notes.md#",
		"/book/Thumbs.db",
	}
	for _, p := range ignored {
		assert.True(t, shouldIgnoreEvent(p), p)
	}

	accepted := []string{
		"/book/notes.md",
		"/book/1 Intro/2 Setup.md",
		"/book/diagram.png",
	}
	for _, p := range accepted {
		assert.False(t, shouldIgnoreEvent(p), p)
	}
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	rebuildReq := make(chan struct{}, 1)
	trigger := newDebouncer(rebuildReq)

	for range 10 {
		trigger()
	}

	select {
	case <-rebuildReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}

	// The burst collapsed into a single request.
	select {
	case <-rebuildReq:
		t.Fatal("expected a single coalesced request")
	case <-time.After(2 * debounceInterval):
	}
}

func TestBuildStatusTransitions(t *testing.T) {
	bs := &buildStatus{}

	err, good := bs.snapshot()
	assert.NoError(t, err)
	assert.False(t, good)

	bs.setError(assert.AnError)
	err, good = bs.snapshot()
	assert.Error(t, err)
	assert.False(t, good)

	bs.setSuccess()
	err, good = bs.snapshot()
	assert.NoError(t, err)
	assert.True(t, good)

	// A later failure keeps the good-build flag set.
	bs.setError(assert.AnError)
	err, good = bs.snapshot()
	assert.Error(t, err)
	assert.True(t, good)
}

func TestHealthzReflectsBuildState(t *testing.T) {
	s := &Server{status: &buildStatus{}, metrics: newMetrics()}

	rec := httptest.NewRecorder()
	s.handleHealthz(rec, nil)
	assert.Equal(t, 200, rec.Code)

	s.status.setError(assert.AnError)
	rec = httptest.NewRecorder()
	s.handleHealthz(rec, nil)
	assert.Equal(t, 503, rec.Code)

	s.status.setSuccess()
	s.status.setError(assert.AnError)
	rec = httptest.NewRecorder()
	s.handleHealthz(rec, nil)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestRebuildUpdatesStatusAndMetrics(t *testing.T) {
	root := t.TempDir()
	book := filepath.Join(root, "book")
	require.NoError(t, os.MkdirAll(filepath.Join(book, "1 Guide"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(book, "1 Guide", "1 Intro.md"), []byte("hello\n"), 0o600))
	tplPath := filepath.Join(root, "section.html")
	require.NoError(t, os.WriteFile(tplPath, assemble.DefaultTemplate(), 0o600))

	cfg := &config.Config{
		Book:     book,
		Output:   config.OutputConfig{BaseDirectory: filepath.Join(root, "out"), Directory: "pages", AssetsDirectory: "assets"},
		Template: tplPath,
	}
	s := NewServer(cfg)

	s.rebuild()
	err, good := s.status.snapshot()
	require.NoError(t, err)
	assert.True(t, good)
	_, statErr := os.Stat(filepath.Join(cfg.PagesDir(), "1-guide", "1-intro.html"))
	assert.NoError(t, statErr)

	// Break the source; rebuild fails but the good-build flag survives.
	cfg.Template = filepath.Join(root, "missing.html")
	s.rebuild()
	err, good = s.status.snapshot()
	assert.Error(t, err)
	assert.True(t, good)
}
