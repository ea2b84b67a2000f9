// Package titlenorm rewrites informally authored media titles into a
// canonical "Artist - Title (Annotation)" form.
//
// The Engine runs a fixed pipeline over each title: pre-clean, bracket
// validation, artist/song split, quote removal, relocation of clauses that
// were written into the artist segment, a cursor-driven boundary scan that
// separates the preserved title from promotional noise, annotation bracketing
// and spelling fixes, near-duplicate annotation removal, and re-capitalization.
//
// Keyword vocabularies live in a Rules table supplied at construction so
// callers can extend or replace them. An Engine holds no mutable state and may
// be shared between goroutines.
//
// Failures are returned as *Error values wrapping ErrUnbalancedBracket,
// ErrAmbiguousSegment, or ErrMalformedToken. The engine never substitutes the
// raw title itself; callers that want that behaviour use Fallback.
package titlenorm
