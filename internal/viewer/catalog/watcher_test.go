package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherInvalidatesOnSnapshotChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSnapshot(t, dir, "all_products_1.json", `[{"name":"one"}]`, time.Now().Add(-time.Hour))
	session := NewSession(NewLoader())
	if got := session.Load(dir).Products.Len(); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}

	watcher, err := NewWatcher(session, dir, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher.Start(ctx)
	defer func() {
		if err := watcher.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	}()

	writeSnapshot(t, dir, "all_products_2.json", `[{"name":"a"},{"name":"b"}]`, time.Now())

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, ok := session.Cached(dir); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("memo was not invalidated")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := session.Load(dir).Products.Len(); got != 2 {
		t.Errorf("expected reload to see 2 records, got %d", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	if !snapshotEvent(fsEvent("data/all_products_9.json", true)) {
		t.Errorf("expected snapshot write to count")
	}
	if snapshotEvent(fsEvent("data/notes.txt", true)) {
		t.Errorf("expected unrelated file to be ignored")
	}
	if snapshotEvent(fsEvent("data/all_products_9.json", false)) {
		t.Errorf("expected chmod to be ignored")
	}
}

func fsEvent(name string, write bool) fsnotify.Event {
	op := fsnotify.Chmod
	if write {
		op = fsnotify.Write
	}
	return fsnotify.Event{Name: name, Op: op}
}
