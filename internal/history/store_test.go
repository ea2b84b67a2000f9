package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"retitle/internal/history"
)

func openStore(t *testing.T, path string) *history.Store {
	t.Helper()
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenAppliesMigrationsIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	first := openStore(t, path)
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second := openStore(t, path)
	if second.Path() != path {
		t.Errorf("Path() = %q, want %q", second.Path(), path)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := history.Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestBatchLifecycle(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	batch, err := store.CreateBatch(ctx, "/music")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	entries := []history.Entry{
		{BatchID: batch.ID, OldName: "a - b.mp3", NewName: "A - B.mp3", RawTitle: "a - b", Normalized: "A - B", Status: "renamed"},
		{BatchID: batch.ID, OldName: "bad.mp3", NewName: "bad.mp3", RawTitle: "bad", Status: "failed", Error: "no delimiter"},
	}
	for _, entry := range entries {
		if err := store.RecordRename(ctx, entry); err != nil {
			t.Fatalf("RecordRename: %v", err)
		}
	}

	got, err := store.Batch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if got.Dir != "/music" || got.Count != 2 || got.Reverted() {
		t.Errorf("Batch() = %+v", got)
	}

	stored, err := store.Entries(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("Entries() returned %d rows", len(stored))
	}
	if stored[0].NewName != "A - B.mp3" || stored[0].Normalized != "A - B" || stored[0].CreatedAt.IsZero() {
		t.Errorf("entry[0] = %+v", stored[0])
	}
	if stored[1].Error != "no delimiter" || stored[1].Normalized != "" {
		t.Errorf("entry[1] = %+v", stored[1])
	}

	if err := store.MarkReverted(ctx, batch.ID); err != nil {
		t.Fatalf("MarkReverted: %v", err)
	}
	got, err = store.Batch(ctx, batch.ID)
	if err != nil {
		t.Fatalf("Batch after revert: %v", err)
	}
	if !got.Reverted() {
		t.Error("expected batch to be reverted")
	}
}

func TestRecordRenameRequiresBatch(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	if err := store.RecordRename(context.Background(), history.Entry{OldName: "x"}); err == nil {
		t.Fatal("expected error without batch id")
	}
	err := store.RecordRename(context.Background(), history.Entry{BatchID: "missing", OldName: "x", Status: "renamed"})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown batch")
	}
}

func TestListBatchesNewestFirst(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		batch, err := store.CreateBatch(ctx, "/dir")
		if err != nil {
			t.Fatalf("CreateBatch: %v", err)
		}
		ids = append(ids, batch.ID)
		time.Sleep(2 * time.Millisecond)
	}

	batches, err := store.ListBatches(ctx, 0)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(batches) != 3 || batches[0].ID != ids[2] || batches[2].ID != ids[0] {
		t.Fatalf("ListBatches order = %+v", batches)
	}

	limited, err := store.ListBatches(ctx, 1)
	if err != nil {
		t.Fatalf("ListBatches(limit): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListBatches(1) returned %d", len(limited))
	}
}

func TestBatchPrefixResolution(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	batch, err := store.CreateBatch(ctx, "/dir")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	got, err := store.Batch(ctx, batch.ID[:8])
	if err != nil {
		t.Fatalf("Batch(prefix): %v", err)
	}
	if got.ID != batch.ID {
		t.Errorf("Batch(prefix) = %s, want %s", got.ID, batch.ID)
	}

	if _, err := store.Batch(ctx, "zzzz"); !errors.Is(err, history.ErrBatchNotFound) {
		t.Errorf("Batch(unknown) error = %v, want ErrBatchNotFound", err)
	}
	if _, err := store.Batch(ctx, "%"); !errors.Is(err, history.ErrBatchNotFound) {
		t.Errorf("Batch(%%) error = %v, want ErrBatchNotFound", err)
	}
	if _, err := store.CreateBatch(ctx, "/other"); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if _, err := store.Batch(ctx, ""); !errors.Is(err, history.ErrBatchNotFound) {
		t.Errorf("Batch(\"\") error = %v", err)
	}
}

func TestMarkRevertedUnknownBatch(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	if err := store.MarkReverted(context.Background(), "missing"); !errors.Is(err, history.ErrBatchNotFound) {
		t.Errorf("MarkReverted error = %v, want ErrBatchNotFound", err)
	}
}

func TestLockExcludesSecondStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first := openStore(t, path)
	second := openStore(t, path)

	unlock, err := first.Lock(context.Background())
	if err != nil {
		t.Fatalf("first Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if _, err := second.Lock(ctx); !errors.Is(err, history.ErrLocked) {
		t.Fatalf("second Lock error = %v, want ErrLocked", err)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	unlockSecond, err := second.Lock(context.Background())
	if err != nil {
		t.Fatalf("second Lock after release: %v", err)
	}
	_ = unlockSecond()
}
