package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RequiresFile(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Error("expected error for missing url file")
	}
}

func TestNew_Defaults(t *testing.T) {
	s, err := New("urls.txt")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.listen != DefaultListenAddr {
		t.Errorf("expected listen %q, got %q", DefaultListenAddr, s.listen)
	}
	if s.interval != DefaultInterval {
		t.Errorf("expected interval %v, got %v", DefaultInterval, s.interval)
	}
	if s.workers != DefaultWorkers {
		t.Errorf("expected %d workers, got %d", DefaultWorkers, s.workers)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New("urls.txt", WithInterval(0)); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := New("urls.txt", WithWorkers(0)); err == nil {
		t.Error("expected error for zero workers")
	}
	if _, err := New("urls.txt", WithListenAddr("")); err == nil {
		t.Error("expected error for empty listen address")
	}
}

func TestRunCheck_UpdatesResults(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	file := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(file, []byte(backend.URL+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write url file: %v", err)
	}

	s, err := New(file, WithLogger(quietLogger()), WithWorkers(2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.runCheck()

	results, lastRun := s.snapshot()
	if got := results[backend.URL]; got != "200" {
		t.Errorf("expected outcome '200', got %q", got)
	}
	if lastRun.IsZero() {
		t.Error("expected lastRun to be set")
	}
}

func TestRunCheck_MissingFileKeepsPreviousResults(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "nope.txt"), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.results = map[string]string{"http://a": "200"}
	s.lastRun = time.Unix(1700000000, 0)

	s.runCheck()

	results, lastRun := s.snapshot()
	if got := results["http://a"]; got != "200" {
		t.Errorf("expected previous results to survive, got %v", results)
	}
	if lastRun.Unix() != 1700000000 {
		t.Errorf("expected lastRun unchanged, got %v", lastRun)
	}
}

func TestStartStop(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	file := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(file, []byte(backend.URL+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write url file: %v", err)
	}

	s, err := New(file,
		WithLogger(quietLogger()),
		WithListenAddr("127.0.0.1:0"),
		WithInterval(time.Hour),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.Start()

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
