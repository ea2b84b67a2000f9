// Package history journals rename batches in SQLite so they can be listed and
// undone later.
//
// A batch groups the renames of one directory pass and is identified by a
// UUID. The store runs on a single WAL-mode connection with a busy timeout;
// callers that mutate files take the exclusive lock returned by Store.Lock so
// two retitle processes never rename or undo in the same database at once.
package history
