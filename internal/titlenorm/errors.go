package titlenorm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnbalancedBracket = errors.New("unbalanced bracket")
	ErrAmbiguousSegment  = errors.New("ambiguous segment")
	ErrMalformedToken    = errors.New("malformed token")
)

// Error carries the pipeline stage and offset at which normalization failed.
// Kind is one of the exported sentinels so callers can use errors.Is.
type Error struct {
	Kind   error
	Stage  string
	Pos    int
	Detail string
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Stage != "" {
		parts = append(parts, e.Stage)
	}
	kind := "normalize failed"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	if e.Pos >= 0 {
		kind = fmt.Sprintf("%s at offset %d", kind, e.Pos)
	}
	parts = append(parts, kind)
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		parts = append(parts, detail)
	}
	return "titlenorm: " + strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, stage string, pos int, detail string) *Error {
	return &Error{Kind: kind, Stage: stage, Pos: pos, Detail: detail}
}

// Fallback applies the raw-title policy used by file-naming callers: the
// normalized value when err is nil, otherwise the trimmed raw input.
func Fallback(raw, normalized string, err error) string {
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return normalized
}
