package titlenorm

import "fmt"

// BracketKind identifies a bracket pair.
type BracketKind int

const (
	Paren BracketKind = iota + 1
	Square
	Brace
)

func (k BracketKind) String() string {
	switch k {
	case Paren:
		return "paren"
	case Square:
		return "bracket"
	case Brace:
		return "brace"
	default:
		return "unknown"
	}
}

// BracketSpan is a matched bracket pair. Start is the offset of the open
// character and End the offset just past the close character.
type BracketSpan struct {
	Kind    BracketKind
	Start   int
	End     int
	Content string
}

func bracketOf(c byte) (BracketKind, bool, bool) {
	switch c {
	case '(':
		return Paren, true, true
	case ')':
		return Paren, false, true
	case '[':
		return Square, true, true
	case ']':
		return Square, false, true
	case '{':
		return Brace, true, true
	case '}':
		return Brace, false, true
	}
	return 0, false, false
}

func isOpenBracket(c byte) bool {
	_, open, ok := bracketOf(c)
	return ok && open
}

func isCloseBracket(c byte) bool {
	_, open, ok := bracketOf(c)
	return ok && !open
}

// MatchSpans returns the top-level bracket spans of s in order. A close
// character must match the kind of the most recently opened pair and every
// open must be closed; otherwise the error wraps ErrUnbalancedBracket.
func MatchSpans(s string) ([]BracketSpan, error) {
	type open struct {
		kind BracketKind
		pos  int
	}
	var (
		stack []open
		spans []BracketSpan
	)
	for i := 0; i < len(s); i++ {
		kind, isOpen, ok := bracketOf(s[i])
		if !ok {
			continue
		}
		if isOpen {
			stack = append(stack, open{kind: kind, pos: i})
			continue
		}
		if len(stack) == 0 {
			return nil, newError(ErrUnbalancedBracket, "match", i, fmt.Sprintf("unexpected %q", s[i]))
		}
		top := stack[len(stack)-1]
		if top.kind != kind {
			return nil, newError(ErrUnbalancedBracket, "match", i,
				fmt.Sprintf("%s closed by %s", top.kind, kind))
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			spans = append(spans, BracketSpan{Kind: kind, Start: top.pos, End: i + 1, Content: s[top.pos+1 : i]})
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, newError(ErrUnbalancedBracket, "match", top.pos, fmt.Sprintf("%s never closed", top.kind))
	}
	return spans, nil
}

// NestedSpans returns the spans directly inside span, with offsets relative
// to the string span was extracted from.
func NestedSpans(span BracketSpan) ([]BracketSpan, error) {
	inner, err := MatchSpans(span.Content)
	if err != nil {
		return nil, err
	}
	shift := span.Start + 1
	for i := range inner {
		inner[i].Start += shift
		inner[i].End += shift
	}
	return inner, nil
}

// mustSpans is used after the full title has already been validated; edits
// made by the pipeline only remove or insert whole pairs.
func mustSpans(s string) []BracketSpan {
	spans, err := MatchSpans(s)
	if err != nil {
		return nil
	}
	return spans
}

func insideSpan(spans []BracketSpan, pos int) bool {
	for _, span := range spans {
		if pos >= span.Start && pos < span.End {
			return true
		}
	}
	return false
}

// firstSpanFrom returns the first top-level span that starts at or after pos.
func firstSpanFrom(spans []BracketSpan, pos int) (BracketSpan, bool) {
	for _, span := range spans {
		if span.Start >= pos {
			return span, true
		}
	}
	return BracketSpan{}, false
}
