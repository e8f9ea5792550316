package confloader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/promwalk/internal/telemetry/logger"
)

func TestWatcher_Watch_NonexistentDir(t *testing.T) {
	w, err := NewWatcher(WithWatcherLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch("/nonexistent/path/metrics.prom"); err == nil {
		t.Error("Watch() expected error for nonexistent directory")
	}
}

func TestWatcher_NotifiesWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "metrics.prom")
	other := filepath.Join(dir, "other.prom")
	if err := os.WriteFile(watched, []byte("up 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WithWatcherLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	if err := w.Watch(watched); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	var mu sync.Mutex
	var changed []string
	notified := make(chan struct{}, 16)
	w.OnChange(func(path string) {
		mu.Lock()
		changed = append(changed, filepath.Base(path))
		mu.Unlock()
		notified <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	if err := os.WriteFile(other, []byte("up 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(watched, []byte("up 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, name := range changed {
		if name != "metrics.prom" {
			t.Errorf("unexpected notification for %s", name)
		}
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.prom")
	if err := os.WriteFile(path, []byte("up 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WithWatcherLogger(logger.Nop()), WithDebounce(200*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	notified := make(chan string, 16)
	w.OnChange(func(p string) { notified <- p })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("up 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-notified:
		if got != path {
			t.Errorf("notified %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}
	select {
	case got := <-notified:
		t.Errorf("burst produced a second notification for %q", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_RunReturnsOnClose(t *testing.T) {
	w, err := NewWatcher(WithWatcherLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after Close")
	}
}

func TestWatcher_OnChange_MultipleCallbacks(t *testing.T) {
	w, err := NewWatcher(WithWatcherLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	count := 0
	for i := 0; i < 3; i++ {
		w.OnChange(func(string) { count++ })
	}
	w.notify("/tmp/metrics.prom")
	if count != 3 {
		t.Errorf("callbacks invoked %d times, want 3", count)
	}
}
