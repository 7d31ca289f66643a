package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestWatcherLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	writeFile(t, path, "BEGIN:VCALENDAR\nEND:VCALENDAR\n")

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if w.IsStarted() {
		t.Error("watcher should not report started before Start")
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsStarted() {
		t.Error("watcher should report started")
	}
	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should report stopped after Stop")
	}
	// Stop is idempotent.
	w.Stop()

	// A stopped watcher can be started again.
	if err := w.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	writeFile(t, path, "v1")

	var changes atomic.Int32
	w, err := New(path,
		WithDebounce(20*time.Millisecond),
		WithPollInterval(25*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeFile(t, path, "v2 with more content")

	waitFor(t, 3*time.Second, func() bool { return changes.Load() >= 1 })

	select {
	case <-w.Changed():
	case <-time.After(time.Second):
		t.Error("change channel never signaled")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	writeFile(t, path, "v1")

	var changes atomic.Int32
	w, err := New(path,
		WithForcePoll(true),
		WithDebounce(150*time.Millisecond),
		WithPollInterval(15*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// A burst of writes inside the debounce window collapses to one signal.
	for i := 0; i < 5; i++ {
		writeFile(t, path, time.Now().String())
		time.Sleep(30 * time.Millisecond)
	}

	waitFor(t, 3*time.Second, func() bool { return changes.Load() >= 1 })
	time.Sleep(300 * time.Millisecond)
	if got := changes.Load(); got != 1 {
		t.Errorf("burst produced %d notifications, want 1", got)
	}
}

func TestWatcherForcePollMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	writeFile(t, path, "v1")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("forced watcher should run in polling mode")
	}
}

func TestWatcherPollingReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.ics")
	writeFile(t, path, "v1")

	var gotRemoved atomic.Bool
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(15*time.Millisecond),
		WithOnError(func(err error) {
			if err == ErrFileRemoved {
				gotRemoved.Store(true)
			}
		}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, 3*time.Second, func() bool { return gotRemoved.Load() })
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{" YES ", true},
		{"on", true},
		{"0", false},
		{"", false},
		{"nope", false},
	}
	for _, tt := range tests {
		t.Setenv(ForcePollEnvVar, tt.value)
		if got := envBool(ForcePollEnvVar); got != tt.want {
			t.Errorf("envBool(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
