// Package textutil provides string similarity metrics and filename
// sanitization shared by the title engine and the renamer.
//
// Similarity functions return a score in [0,1] where 1 means identical. The
// LCS-based metrics come from go-edlib; the edit-distance and n-gram metrics
// come from strutil; the token cosine metric works on term-frequency
// fingerprints. Callers pick one by name through MetricByName so the choice
// can live in configuration.
package textutil
