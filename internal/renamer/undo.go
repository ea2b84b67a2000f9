package renamer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"retitle/internal/history"
	"retitle/internal/logging"
)

var (
	// ErrNoHistory is returned by Undo when the renamer has no history store.
	ErrNoHistory = errors.New("no history store configured")
	// ErrAlreadyReverted is returned when a batch has been undone before.
	ErrAlreadyReverted = errors.New("batch already reverted")
)

// UndoResult reports what Undo restored.
type UndoResult struct {
	Batch    history.Batch   `json:"batch"`
	Restored int             `json:"restored"`
	Failed   []history.Entry `json:"failed,omitempty"`
}

// Undo moves the files of a journaled batch back to their original names, in
// reverse order. The batch is marked reverted only when every file was
// restored; files already back under their original name from an earlier,
// partial undo count as restored.
func (r *Renamer) Undo(ctx context.Context, batchID string) (*UndoResult, error) {
	if r.store == nil {
		return nil, ErrNoHistory
	}
	unlock, err := r.store.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = unlock() }()

	batch, err := r.store.Batch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Reverted() {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReverted, batch.ID)
	}
	entries, err := r.store.Entries(ctx, batch.ID)
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(logging.ContextWithBatchID(ctx, batch.ID), r.logger)
	result := &UndoResult{Batch: *batch}
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !restorable(entry) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("undo cancelled: %w", err)
		}
		if restoredEarlier(batch.Dir, entry) {
			result.Restored++
			continue
		}
		if err := moveFile(batch.Dir, entry.NewName, entry.OldName); err != nil {
			entry.Error = err.Error()
			result.Failed = append(result.Failed, entry)
			logging.WarnWithContext(logger, "restore failed", "undo_failed",
				logging.String(logging.FieldPath, filepath.Join(batch.Dir, entry.NewName)),
				logging.Error(err),
			)
			continue
		}
		result.Restored++
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("undo batch %s: %d of %d files not restored", batch.ID, len(result.Failed), len(result.Failed)+result.Restored)
	}
	if err := r.store.MarkReverted(ctx, batch.ID); err != nil {
		return result, err
	}
	logger.Info("rename batch reverted", logging.Int("restored", result.Restored))
	return result, nil
}

// restoredEarlier reports whether entry's file is already back under its
// original name: the new name is gone and the old one exists.
func restoredEarlier(dir string, e history.Entry) bool {
	if strings.EqualFold(e.OldName, e.NewName) {
		return false
	}
	if _, err := os.Lstat(filepath.Join(dir, e.NewName)); !errors.Is(err, os.ErrNotExist) {
		return false
	}
	_, err := os.Lstat(filepath.Join(dir, e.OldName))
	return err == nil
}

func restorable(e history.Entry) bool {
	switch Status(e.Status) {
	case StatusRenamed, StatusFallback:
		return e.OldName != e.NewName
	default:
		return false
	}
}
