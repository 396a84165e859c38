package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesEvents(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 callback, got %d", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("expected no callbacks after Stop, got %d", got)
	}
}

func TestNewWatcher_RequiresPath(t *testing.T) {
	if _, err := NewWatcher("", 0); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file watcher test in short mode")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("retention:\n  default_days: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	w, err := NewWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(p string) error {
			changed <- p
			return nil
		})
	}()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}
	if err := os.WriteFile(path, []byte("retention:\n  default_days: 14\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}

	select {
	case got := <-changed:
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Errorf("expected change for %q, got %q", abs, got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Watch() did not return after Stop")
	}
}
