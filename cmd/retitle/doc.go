// Package main hosts the retitle CLI entrypoint and command graph.
//
// The Cobra-based command tree normalizes titles given as arguments or on
// stdin, renames the media files of a directory, and lists or undoes past
// rename batches. It centralizes configuration resolution, logger setup, and
// engine construction so subcommands only deal with input and output.
package main
