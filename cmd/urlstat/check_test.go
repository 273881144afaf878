package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckCommand_PrintsResults(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	file := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(file, []byte(backend.URL+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write url file: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check", "--workers", "2", file})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := backend.URL + " 200"
	if !strings.Contains(out.String(), want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
	}
}

func TestCheckCommand_MissingFileSkipped(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer backend.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(file, []byte(backend.URL+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write url file: %v", err)
	}
	missing := filepath.Join(dir, "nope.txt")

	var out bytes.Buffer
	cmd := newRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"check", missing, file})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := backend.URL + " 404"
	if !strings.Contains(out.String(), want) {
		t.Errorf("expected remaining file to be checked, got:\n%s", out.String())
	}
}

func TestCheckCommand_RequiresArgs(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error when no files are given")
	}
}
