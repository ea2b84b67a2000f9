package titlenorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	creditByPattern = regexp.MustCompile(`(?i)\((cover|remix)\)\s+by\b`)
	ftPattern       = regexp.MustCompile(`(?i)\bft\b\.?`)
	featPattern     = regexp.MustCompile(`(?i)\bfeat\b\.?`)
	pronounWord     = regexp.MustCompile(`^[\p{L}']+`)
)

// annotate brackets unbracketed credit clauses, drops credit keywords that
// name nobody and canonicalizes the spelling of featuring credits.
func (e *Engine) annotate(song string) string {
	song = creditByPattern.ReplaceAllStringFunc(song, func(m string) string {
		return strings.ToLower(m[1:strings.IndexByte(m, ')')]) + " by"
	})
	for {
		next, ok := e.wrapNext(song)
		if !ok {
			break
		}
		song = next
	}
	song = ftPattern.ReplaceAllString(song, "feat.")
	song = featPattern.ReplaceAllString(song, "feat.")
	return collapseSpaces(song)
}

// wrapNext brackets the first unbracketed wrap keyword clause in s.
func (e *Engine) wrapNext(s string) (string, bool) {
	spans := mustSpans(s)
	wrappable := func(r *rule) bool { return r.Role == RolePrefix && r.Wrap }
	for from := 0; ; {
		m, ok := e.rules.find(s, from, wrappable)
		if !ok {
			return s, false
		}
		from = m.end
		if insideSpan(spans, m.start) {
			continue
		}
		isWith := strings.EqualFold(m.rule.Text, "with")
		if isWith && !e.withOpensClause(s, m.start, m.end) {
			continue
		}
		stop := e.clauseStop(s, m.end, true)
		if isWith {
			if i := strings.IndexByte(s[m.end:stop], ','); i >= 0 {
				stop = m.end + i
			}
		}
		if strings.Trim(s[m.end:stop], " .,") == "" {
			if isWith {
				continue
			}
			// A credit keyword with no name after it is dropped.
			out := collapseSpaces(s[:m.start] + " " + s[stop:])
			if out == "" {
				return s, false
			}
			return out, true
		}
		clause := strings.TrimRight(s[m.start:stop], " ,")
		end := m.start + len(clause)
		return s[:m.start] + "(" + clause + ")" + s[end:], true
	}
}

// withOpensClause reports whether "with" at [start,end) introduces a credit
// rather than being part of the title itself: not the first word, not
// followed by a bracket or the end, and not followed by an object pronoun.
func (e *Engine) withOpensClause(s string, start, end int) bool {
	if start == 0 {
		return false
	}
	rest := strings.TrimLeft(s[end:], " ")
	if rest == "" {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(rest); r < utf8.RuneSelf && isOpenBracket(byte(r)) {
		return false
	}
	return !e.isPronoun(pronounWord.FindString(rest))
}

func (e *Engine) isPronoun(word string) bool {
	_, ok := e.pronouns[strings.ToLower(strings.Trim(word, "'"))]
	return ok
}

// annotations lists the top-level bracketed clauses of a finished title.
func (e *Engine) annotations(title string) []Annotation {
	spans := mustSpans(title)
	if len(spans) == 0 {
		return nil
	}
	out := make([]Annotation, 0, len(spans))
	for _, span := range spans {
		out = append(out, Annotation{Kind: e.rules.classify(span.Content), Text: span.Content})
	}
	return out
}
