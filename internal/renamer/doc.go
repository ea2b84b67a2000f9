// Package renamer applies title normalization to the media files of a
// directory.
//
// File stems follow the downloader convention "<title>#<videoID>.<ext>"; the
// video identifier and extension are carried over unchanged. Titles are
// normalized concurrently by a bounded worker pool, then renames are applied
// one at a time in name order and journaled to the history store so a batch
// can be undone.
package renamer
