// Package logging builds the slog loggers used by the retitle CLI.
//
// Console output is a compact single-line format written to stderr so it
// never mixes with command results on stdout. When a log directory is
// configured, every record is also appended as JSON to retitle.log through a
// fan-out handler. Attribute helpers and field constants keep keys consistent
// across packages, and NewNop gives tests and optional wiring a logger that
// discards everything.
package logging
