package history

import (
	"errors"
	"time"
)

var (
	// ErrBatchNotFound is returned when no batch matches an identifier.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrAmbiguousBatch is returned when a short identifier matches several batches.
	ErrAmbiguousBatch = errors.New("batch identifier is ambiguous")
	// ErrLocked is returned when another process holds the history lock.
	ErrLocked = errors.New("history is locked by another retitle process")
)

// Batch is one rename pass over a directory.
type Batch struct {
	ID         string     `json:"id"`
	Dir        string     `json:"dir"`
	StartedAt  time.Time  `json:"started_at"`
	Count      int        `json:"count"`
	RevertedAt *time.Time `json:"reverted_at,omitempty"`
}

// Reverted reports whether the batch has been undone.
func (b Batch) Reverted() bool { return b.RevertedAt != nil }

// Entry is one journaled file of a batch. Names are relative to the batch
// directory.
type Entry struct {
	ID         int64     `json:"id"`
	BatchID    string    `json:"batch_id"`
	OldName    string    `json:"old_name"`
	NewName    string    `json:"new_name"`
	RawTitle   string    `json:"raw_title"`
	Normalized string    `json:"normalized,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
