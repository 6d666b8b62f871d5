package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chomsky/internal/config"
)

func TestWatchReportsSourceChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	source := filepath.Join(sub, "main.c")
	if err := os.WriteFile(source, []byte("int a = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, config.Default().Files, func(path string) { changed <- path }, ready)
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("watch ended early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(source, []byte("int a = 2;"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if path != source {
			t.Fatalf("changed %s, want %s", path, source)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, config.Default().Files, func(string) {}, nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSkipDir(t *testing.T) {
	for name, want := range map[string]bool{".git": true, "node_modules": true, "src": false} {
		if got := SkipDir(name); got != want {
			t.Errorf("SkipDir(%q) = %v", name, got)
		}
	}
}
