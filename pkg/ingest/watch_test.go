package ingest

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func testWatcher(t *testing.T, onChange func(string)) *Watcher {
	t.Helper()
	opts := DefaultWatchOptions()
	opts.DebounceMs = 20
	w, err := NewWatcher(onChange, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitFor(t *testing.T, ch <-chan string, timeout time.Duration) string {
	t.Helper()
	select {
	case path := <-ch:
		return path
	case <-time.After(timeout):
		t.Fatal("timed out waiting for watcher callback")
		return ""
	}
}

// --- pattern matching ---

func TestWatcher_Matches(t *testing.T) {
	w := testWatcher(t, func(string) {})
	w.root = "/workspace"

	assert.True(t, w.matches("/workspace/design/tokens.json"))
	assert.True(t, w.matches("/workspace/brand.tokens.json"))
	assert.False(t, w.matches("/workspace/design/readme.md"))
	assert.False(t, w.matches("/workspace/package.json"))
}

func TestWatcher_Excluded(t *testing.T) {
	w := testWatcher(t, func(string) {})
	w.root = "/workspace"

	assert.True(t, w.excluded("/workspace/node_modules/pkg/tokens.json"))
	assert.True(t, w.excluded("/workspace/dist/tokens.json"))
	assert.False(t, w.excluded("/workspace/design/tokens.json"))
}

// --- event delivery ---

func TestWatcher_CallbackOnWrite(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 8)

	w := testWatcher(t, func(path string) { changed <- path })
	require.NoError(t, w.Start(dir))

	target := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(target, []byte(`{"color":{"primary":"#111111"}}`), 0o644))

	got := waitFor(t, changed, 2*time.Second)
	assert.Equal(t, target, got)
}

func TestWatcher_IgnoresNonTokenFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 8)

	w := testWatcher(t, func(path string) { changed <- path })
	require.NoError(t, w.Start(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected callback for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := testWatcher(t, func(string) {})
	require.NoError(t, w.Start(t.TempDir()))

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
