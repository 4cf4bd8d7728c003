package catalog

import (
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestSessionMemoizesPerDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	writeSnapshot(t, dir, "all_products_1.json", `[{"name":"one"}]`, base)

	session := NewSession(NewLoader())
	first := session.Load(dir)
	if first.Products.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", first.Products.Len())
	}

	// A newer snapshot is ignored until the memo is invalidated.
	writeSnapshot(t, dir, "all_products_2.json", `[{"name":"a"},{"name":"b"}]`, base.Add(time.Hour))
	second := session.Load(dir + string(filepath.Separator))
	if second.Products.Len() != 1 {
		t.Fatalf("expected memoized result, got %d records", second.Products.Len())
	}
	if session.Loads() != 1 {
		t.Fatalf("expected a single filesystem load, got %d", session.Loads())
	}

	session.Invalidate(dir)
	if _, ok := session.Cached(dir); ok {
		t.Fatalf("expected memo to be dropped")
	}
	third := session.Load(dir)
	if third.Products.Len() != 2 {
		t.Fatalf("expected reload to pick the newer snapshot, got %d records", third.Products.Len())
	}
	if session.Loads() != 2 {
		t.Errorf("expected two loads, got %d", session.Loads())
	}
}

func TestSessionMemoizesFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	session := NewSession(nil)

	if result := session.Load(dir); !result.Failed() {
		t.Fatalf("expected failure for empty directory")
	}
	writeSnapshot(t, dir, "all_products_1.json", `[{"name":"late"}]`, time.Now())
	if result := session.Load(dir); !result.Failed() {
		t.Fatalf("expected memoized failure")
	}
	if session.Loads() != 1 {
		t.Errorf("expected one load, got %d", session.Loads())
	}
}

func TestSessionConcurrentLoads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSnapshot(t, dir, "all_products_1.json", brakesSnapshot, time.Now())
	session := NewSession(NewLoader())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view := Browse(session.Load(dir).Products, Query{Category: "Brakes"})
			if view.Stats.RecordCount != 2 {
				t.Errorf("expected 2 records, got %d", view.Stats.RecordCount)
			}
		}()
	}
	wg.Wait()

	if session.Loads() != 1 {
		t.Errorf("expected one load, got %d", session.Loads())
	}
}
