package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

func markdownOnly(name string) bool {
	return strings.HasSuffix(name, ".md")
}

func TestWatcher_Translate(t *testing.T) {
	w := New("/thesis/manuscript", Options{Filter: markdownOnly})

	tests := []struct {
		name   string
		event  fsnotify.Event
		wantOK bool
		wantOp Operation
	}{
		{"create", fsnotify.Event{Name: "/thesis/manuscript/a.md", Op: fsnotify.Create}, true, OpCreate},
		{"write", fsnotify.Event{Name: "/thesis/manuscript/a.md", Op: fsnotify.Write}, true, OpModify},
		{"remove", fsnotify.Event{Name: "/thesis/manuscript/a.md", Op: fsnotify.Remove}, true, OpDelete},
		{"rename", fsnotify.Event{Name: "/thesis/manuscript/a.md", Op: fsnotify.Rename}, true, OpDelete},
		{"chmod ignored", fsnotify.Event{Name: "/thesis/manuscript/a.md", Op: fsnotify.Chmod}, false, 0},
		{"filtered name", fsnotify.Event{Name: "/thesis/manuscript/index.json", Op: fsnotify.Write}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe, ok := w.translate(tt.event)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantOp, fe.Operation)
				assert.Equal(t, "a.md", fe.Path)
			}
		})
	}
}

func TestWatcher_Run_DeliversFilteredBatch(t *testing.T) {
	// Given: a watcher on an empty directory
	dir := t.TempDir()
	w := New(dir, Options{Debounce: 50 * time.Millisecond, Filter: markdownOnly})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []FileEvent, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, batch []FileEvent) {
			batches <- batch
		})
	}()

	select {
	case <-w.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never became ready")
	}

	// When: a manuscript file and an unrelated file are written
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.md"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thesis_index.json"), []byte("{}"), 0o644))

	// Then: one batch arrives and it only names the manuscript file
	select {
	case batch := <-batches:
		require.Len(t, batch, 1)
		assert.Equal(t, "intro.md", batch[0].Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for batch")
	}

	// And: cancellation stops Run cleanly
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_Run_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent"), Options{})

	err := w.Run(context.Background(), func(context.Context, []FileEvent) {})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeManuscriptNotFound, errors.GetCode(err))
}
