package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStartWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	if err == nil {
		t.Fatal("expected error for empty roots")
	}
}

func TestStartWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seed.pdf", "seed")
	writeFile(t, dir, "ignore.txt", "ignore")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, errCh, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
	})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	select {
	case path := <-evCh:
		if filepath.Base(path) != "seed.pdf" {
			t.Errorf("unexpected initial path %q", path)
		}
	case err := <-errCh:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial scan event")
	}

	cancel()
	for range evCh {
		// drain until close
	}
}
