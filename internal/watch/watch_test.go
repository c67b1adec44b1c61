package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debounce = 100 * time.Millisecond

type recorder struct {
	batches chan []string
	err     error
}

func (r *recorder) handle(_ context.Context, changed []string) error {
	r.batches <- changed
	return r.err
}

func start(t *testing.T, dir string, rec *recorder) {
	t.Helper()

	w, err := New([]string{dir}, rec.handle, Options{Debounce: debounce, Ignore: []string{"cmpby_gen.go"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func next(t *testing.T, rec *recorder) []string {
	t.Helper()

	select {
	case b := <-rec.batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no batch delivered")
		return nil
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{batches: make(chan []string, 10)}
	start(t, dir, rec)

	a := filepath.Join(dir, "a.go")
	b := filepath.Join(dir, "b.go")

	for i := range 3 {
		write(t, a, "package p\n"+string(rune('a'+i)))
		time.Sleep(5 * time.Millisecond)
	}

	write(t, b, "package p\n")

	assert.Equal(t, []string{a, b}, next(t, rec))
	assert.Never(t, func() bool { return len(rec.batches) > 0 }, 4*debounce, debounce/5)
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{batches: make(chan []string, 10)}
	start(t, dir, rec)

	write(t, filepath.Join(dir, "cmpby_gen.go"), "package p\n")
	write(t, filepath.Join(dir, "p_test.go"), "package p\n")
	write(t, filepath.Join(dir, "notes.txt"), "x")

	assert.Never(t, func() bool { return len(rec.batches) > 0 }, 4*debounce, debounce/5)

	src := filepath.Join(dir, "p.go")
	write(t, src, "package p\n")
	assert.Equal(t, []string{src}, next(t, rec))
}

func TestWatcher_KeepsGoingAfterHandlerError(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{batches: make(chan []string, 10), err: errors.New("broken build")}
	start(t, dir, rec)

	src := filepath.Join(dir, "p.go")

	write(t, src, "package p\n")
	assert.Equal(t, []string{src}, next(t, rec))

	write(t, src, "package p\n\nvar X int\n")
	assert.Equal(t, []string{src}, next(t, rec))
}

func TestWatcher_Relevant(t *testing.T) {
	w := &Watcher{opts: Options{Ignore: []string{"*_gen.go"}}}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/p/a.go", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/p/a.go", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/p/a.go", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/p/a.go", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/p/a_test.go", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/p/cmpby_gen.go", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/p/a.go.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, nil, Options{})
	assert.Error(t, err)
}
