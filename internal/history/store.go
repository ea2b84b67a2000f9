package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout keeps a fixed fraction width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store manages batch persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: flock.New(path + ".lock")}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lock takes the exclusive file lock next to the database, retrying until ctx
// is done. The returned function releases it.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
	ok, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrLocked, ctxErr)
		}
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return s.lock.Unlock, nil
}

// CreateBatch starts a new batch for dir.
func (s *Store) CreateBatch(ctx context.Context, dir string) (*Batch, error) {
	batch := &Batch{
		ID:        uuid.NewString(),
		Dir:       dir,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO batches (id, dir, started_at) VALUES (?, ?, ?)`,
		batch.ID,
		batch.Dir,
		batch.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}
	return batch, nil
}

// RecordRename appends an entry to a batch.
func (s *Store) RecordRename(ctx context.Context, entry Entry) error {
	if entry.BatchID == "" {
		return errors.New("entry batch id is empty")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO renames (
            batch_id, old_name, new_name, raw_title, normalized, status, error_message, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.BatchID,
		entry.OldName,
		entry.NewName,
		entry.RawTitle,
		nullableString(entry.Normalized),
		entry.Status,
		nullableString(entry.Error),
		entry.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert rename: %w", err)
	}
	return nil
}

const batchColumns = `b.id, b.dir, b.started_at, b.reverted_at,
    (SELECT COUNT(1) FROM renames r WHERE r.batch_id = b.id)`

// ListBatches returns batches newest first. A limit <= 0 returns all.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches b ORDER BY b.started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, *batch)
	}
	return batches, rows.Err()
}

// Batch resolves a full identifier or a unique prefix of one.
func (s *Store) Batch(ctx context.Context, id string) (*Batch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrBatchNotFound
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+batchColumns+` FROM batches b WHERE b.id = ? OR b.id LIKE ? ESCAPE '\' LIMIT 2`,
		id,
		escapeLike(id)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	defer rows.Close()

	var found []*Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		if batch.ID == id {
			return batch, nil
		}
		found = append(found, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get batch: %w", err)
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousBatch, id)
	}
}

// Entries returns the journaled renames of a batch in insertion order.
func (s *Store) Entries(ctx context.Context, batchID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, batch_id, old_name, new_name, raw_title, normalized, status, error_message, created_at
         FROM renames WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list renames: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			normalized sql.NullString
			errMsg     sql.NullString
			createdRaw string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.BatchID,
			&entry.OldName,
			&entry.NewName,
			&entry.RawTitle,
			&normalized,
			&entry.Status,
			&errMsg,
			&createdRaw,
		); err != nil {
			return nil, fmt.Errorf("scan rename: %w", err)
		}
		entry.Normalized = normalized.String
		entry.Error = errMsg.String
		entry.CreatedAt = parseTime(createdRaw)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MarkReverted records that a batch has been undone.
func (s *Store) MarkReverted(ctx context.Context, batchID string) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE batches SET reverted_at = ? WHERE id = ?`,
		time.Now().UTC().Format(timeLayout),
		batchID,
	)
	if err != nil {
		return fmt.Errorf("mark reverted: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	return nil
}

func scanBatch(scanner interface{ Scan(dest ...any) error }) (*Batch, error) {
	var (
		batch      Batch
		startedRaw string
		reverted   sql.NullString
	)
	if err := scanner.Scan(&batch.ID, &batch.Dir, &startedRaw, &reverted, &batch.Count); err != nil {
		return nil, err
	}
	batch.StartedAt = parseTime(startedRaw)
	if reverted.Valid && reverted.String != "" {
		ts := parseTime(reverted.String)
		batch.RevertedAt = &ts
	}
	return &batch, nil
}

func parseTime(raw string) time.Time {
	ts, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
