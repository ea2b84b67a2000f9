package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"retitle/internal/config"
	"retitle/internal/history"
	"retitle/internal/logging"
	"retitle/internal/textutil"
	"retitle/internal/titlenorm"
)

// Normalizer turns a raw title into its canonical form.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// Options tunes a Renamer.
type Options struct {
	Workers    int
	Extensions []string
	// Fallback is config.FallbackRaw or config.FallbackSkip.
	Fallback string
}

// OptionsFromConfig copies the [rename] section.
func OptionsFromConfig(cfg config.Rename) Options {
	return Options{
		Workers:    cfg.Workers,
		Extensions: append([]string(nil), cfg.Extensions...),
		Fallback:   cfg.Fallback,
	}
}

// Renamer plans and applies title normalization over directories.
type Renamer struct {
	engine Normalizer
	store  *history.Store
	opts   Options
	logger *slog.Logger
}

// New builds a Renamer. store may be nil, in which case applied renames are
// not journaled and Undo is unavailable.
func New(engine Normalizer, store *history.Store, opts Options, logger *slog.Logger) *Renamer {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Fallback == "" {
		opts.Fallback = config.FallbackRaw
	}
	return &Renamer{
		engine: engine,
		store:  store,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "renamer"),
	}
}

// Plan lists the matching files of dir and computes their new names without
// touching the file system.
func (r *Renamer) Plan(ctx context.Context, dir string) (*Plan, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	existing := make(map[string]struct{}, len(dirEntries))
	var names []string
	for _, de := range dirEntries {
		existing[de.Name()] = struct{}{}
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		if _, _, ext := ParseName(de.Name()); !matchesExtension(ext, r.opts.Extensions) {
			continue
		}
		names = append(names, de.Name())
	}

	entries, err := r.normalizeAll(ctx, names)
	if err != nil {
		return nil, err
	}
	markConflicts(entries, existing)

	return &Plan{Dir: dir, Entries: entries}, nil
}

// normalizeAll fans names out to the worker pool; results keep input order.
func (r *Renamer) normalizeAll(ctx context.Context, names []string) ([]Entry, error) {
	entries := make([]Entry, len(names))
	jobs := make(chan int)

	workers := min(r.opts.Workers, len(names))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = r.planEntry(names[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range names {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, fmt.Errorf("plan cancelled: %w", cancelled)
	}
	return entries, nil
}

func (r *Renamer) planEntry(name string) Entry {
	title, videoID, ext := ParseName(name)
	entry := Entry{OldName: name, RawTitle: title, VideoID: videoID, Ext: ext}

	normalized, err := r.engine.Normalize(title)
	if err != nil {
		entry.Err = err
		if r.opts.Fallback == config.FallbackSkip {
			entry.Status = StatusFailed
			entry.NewName = name
			r.logger.Debug("normalization failed, skipping", logging.String(logging.FieldTitle, title), logging.Error(err))
			return entry
		}
		entry.Status = StatusFallback
		normalized = titlenorm.Fallback(title, "", err)
		logging.WarnWithContext(r.logger, "normalization failed, using raw title", "normalize_fallback",
			logging.String(logging.FieldTitle, title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "add a keyword rule or rename the file by hand"),
		)
	} else {
		entry.Normalized = normalized
		entry.Status = StatusRenamed
	}

	stem := textutil.SanitizeFileName(normalized)
	if stem == "" {
		entry.Status = StatusFailed
		entry.NewName = name
		if entry.Err == nil {
			entry.Err = errors.New("normalized title is empty after sanitizing")
		}
		return entry
	}
	entry.NewName = BuildName(stem, videoID, ext)
	if entry.NewName == name && entry.Status == StatusRenamed {
		entry.Status = StatusUnchanged
	}
	return entry
}

// markConflicts flags moves whose target already exists in the directory or
// was claimed by an earlier entry. Entries are in name order so the outcome
// is deterministic.
func markConflicts(entries []Entry, existing map[string]struct{}) {
	claimed := make(map[string]struct{}, len(entries))
	for i := range entries {
		e := &entries[i]
		if !e.Moves() {
			continue
		}
		_, onDisk := existing[e.NewName]
		_, taken := claimed[e.NewName]
		if onDisk || taken {
			e.Err = fmt.Errorf("target %q already exists", e.NewName)
			e.Status = StatusConflict
			continue
		}
		claimed[e.NewName] = struct{}{}
	}
}

// Apply performs the moves of plan sequentially and journals them as one
// history batch. Entries that fail are marked in place; the plan is returned
// with its final statuses.
func (r *Renamer) Apply(ctx context.Context, plan *Plan) error {
	if plan == nil {
		return errors.New("plan is nil")
	}
	if !hasMoves(plan) {
		return nil
	}

	var batch *history.Batch
	if r.store != nil {
		unlock, err := r.store.Lock(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = unlock() }()

		batch, err = r.store.CreateBatch(ctx, plan.Dir)
		if err != nil {
			return err
		}
		plan.BatchID = batch.ID
		ctx = logging.ContextWithBatchID(ctx, batch.ID)
	}
	logger := logging.WithContext(ctx, r.logger)

	for i := range plan.Entries {
		e := &plan.Entries[i]
		if !e.Moves() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("apply cancelled: %w", err)
		}
		if err := moveFile(plan.Dir, e.OldName, e.NewName); err != nil {
			e.Err = err
			if errors.Is(err, os.ErrExist) {
				e.Status = StatusConflict
			} else {
				e.Status = StatusFailed
			}
			logging.WarnWithContext(logger, "rename failed", "rename_failed",
				logging.String(logging.FieldPath, filepath.Join(plan.Dir, e.OldName)),
				logging.Error(err),
			)
		} else {
			logger.Debug("renamed", logging.String("from", e.OldName), logging.String("to", e.NewName))
		}
		if batch != nil {
			if err := r.store.RecordRename(ctx, journalEntry(batch.ID, *e)); err != nil {
				return err
			}
		}
	}

	logger.Info("rename batch applied",
		logging.String("dir", plan.Dir),
		logging.Int("renamed", plan.Counts()[StatusRenamed]),
		logging.Int("fallback", plan.Counts()[StatusFallback]),
	)
	return nil
}

// Run plans dir and, unless dryRun is set, applies the plan.
func (r *Renamer) Run(ctx context.Context, dir string, dryRun bool) (*Plan, error) {
	plan, err := r.Plan(ctx, dir)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return plan, nil
	}
	return plan, r.Apply(ctx, plan)
}

func hasMoves(plan *Plan) bool {
	for _, e := range plan.Entries {
		if e.Moves() {
			return true
		}
	}
	return false
}

// moveFile renames within dir, refusing to overwrite a file that appeared
// after planning.
func moveFile(dir, oldName, newName string) error {
	from := filepath.Join(dir, oldName)
	to := filepath.Join(dir, newName)
	if !strings.EqualFold(oldName, newName) {
		if _, err := os.Lstat(to); err == nil {
			return fmt.Errorf("rename %s: %w", newName, os.ErrExist)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat target: %w", err)
		}
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s: %w", oldName, err)
	}
	return nil
}

func journalEntry(batchID string, e Entry) history.Entry {
	return history.Entry{
		BatchID:    batchID,
		OldName:    e.OldName,
		NewName:    e.NewName,
		RawTitle:   e.RawTitle,
		Normalized: e.Normalized,
		Status:     string(e.Status),
		Error:      e.ErrorText(),
	}
}
