package titlenorm

import (
	"errors"
	"testing"
)

func TestMatchSpans(t *testing.T) {
	spans, err := MatchSpans("a (b [c]) {d}")
	if err != nil {
		t.Fatalf("MatchSpans error: %v", err)
	}
	want := []BracketSpan{
		{Kind: Paren, Start: 2, End: 9, Content: "b [c]"},
		{Kind: Brace, Start: 10, End: 13, Content: "d"},
	}
	if len(spans) != len(want) {
		t.Fatalf("MatchSpans() = %+v, want %+v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span[%d] = %+v, want %+v", i, spans[i], want[i])
		}
	}

	nested, err := NestedSpans(spans[0])
	if err != nil {
		t.Fatalf("NestedSpans error: %v", err)
	}
	if len(nested) != 1 || nested[0] != (BracketSpan{Kind: Square, Start: 5, End: 8, Content: "c"}) {
		t.Errorf("NestedSpans() = %+v", nested)
	}
}

func TestMatchSpansUnbalanced(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pos   int
	}{
		{"wrong kind", "(a]", 2},
		{"close without open", "a)", 1},
		{"never closed", "((a)", 0},
		{"interleaved", "([)]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MatchSpans(tt.input)
			if !errors.Is(err, ErrUnbalancedBracket) {
				t.Fatalf("MatchSpans(%q) error = %v, want ErrUnbalancedBracket", tt.input, err)
			}
			var typed *Error
			if !errors.As(err, &typed) || typed.Pos != tt.pos {
				t.Errorf("MatchSpans(%q) position = %+v, want %d", tt.input, typed, tt.pos)
			}
		})
	}
}

func TestMatchSpansReconstructsPositions(t *testing.T) {
	inputs := []string{
		"Song (feat. A) [Remix] {Live}",
		"((a)(b)) c (d [e {f}])",
		"no brackets at all",
		"(Beyoncé) é [ü]",
	}
	for _, s := range inputs {
		spans, err := MatchSpans(s)
		if err != nil {
			t.Fatalf("MatchSpans(%q) error: %v", s, err)
		}
		prevEnd := 0
		for _, span := range spans {
			if span.Start < prevEnd {
				t.Fatalf("MatchSpans(%q) overlapping spans %+v", s, spans)
			}
			kind, open, _ := bracketOf(s[span.Start])
			closeKind, closeOpen, _ := bracketOf(s[span.End-1])
			if !open || closeOpen || kind != span.Kind || closeKind != span.Kind {
				t.Errorf("span %+v does not sit on a %s pair in %q", span, span.Kind, s)
			}
			if s[span.Start+1:span.End-1] != span.Content {
				t.Errorf("span content %q does not match source %q", span.Content, s[span.Start+1:span.End-1])
			}
			prevEnd = span.End
		}
	}
}
