package titlenorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiter separates the artist segment from the song segment.
const Delimiter = " - "

const artistTrailCutset = " ,|&"

// splitSegments cuts s at the first top-level delimiter. Any further
// top-level delimiters inside the song segment collapse to single spaces.
func splitSegments(s string) (string, string, error) {
	spans := mustSpans(s)
	var cuts []int
	for from := 0; from < len(s); {
		idx := strings.Index(s[from:], Delimiter)
		if idx < 0 {
			break
		}
		pos := from + idx
		if !insideSpan(spans, pos) {
			cuts = append(cuts, pos)
		}
		from = pos + len(Delimiter)
	}
	if len(cuts) == 0 {
		return "", "", newError(ErrAmbiguousSegment, "split", -1, "no artist delimiter")
	}

	artist := trimSeparators(s[:cuts[0]])
	parts := make([]string, 0, len(cuts))
	prev := cuts[0] + len(Delimiter)
	for _, cut := range cuts[1:] {
		parts = append(parts, s[prev:cut])
		prev = cut + len(Delimiter)
	}
	parts = append(parts, s[prev:])
	song := trimSeparators(collapseSpaces(strings.Join(parts, " ")))

	if artist == "" {
		return "", "", newError(ErrAmbiguousSegment, "split", 0, "empty artist segment")
	}
	if song == "" {
		return "", "", newError(ErrAmbiguousSegment, "split", cuts[0], "empty song segment")
	}
	return artist, song, nil
}

// unquote removes a pair of quotes that encloses the whole song once its
// bracketed clauses are set aside: the open quote is the first character and
// the matching close the last. Quotes around part of the title, apostrophes
// inside words and the trailing apostrophe of a dropped "g" (lovin') stay.
func unquote(song string) (string, error) {
	spans := mustSpans(song)
	first, last := -1, -1
	for i := 0; i < len(song); i++ {
		if song[i] == ' ' || insideSpan(spans, i) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || first == last {
		return song, nil
	}
	quote := song[first]
	if quote != '"' && quote != '\'' || song[last] != quote {
		return song, nil
	}
	if !opensQuote(song, first) || !closesQuote(song, last) {
		return song, nil
	}
	out := trimSeparators(collapseSpaces(song[:first] + song[first+1:last] + song[last+1:]))
	if out == "" {
		return "", newError(ErrAmbiguousSegment, "unquote", first, "song segment is only quotes")
	}
	return out, nil
}

func opensQuote(s string, i int) bool {
	if i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if isWordRune(prev) {
			return false
		}
	}
	if s[i] == '\'' {
		next, _ := utf8.DecodeRuneInString(s[i+1:])
		return i+1 < len(s) && !unicode.IsSpace(next)
	}
	return true
}

func closesQuote(s string, i int) bool {
	if i+1 < len(s) {
		next, _ := utf8.DecodeRuneInString(s[i+1:])
		if isWordRune(next) {
			return false
		}
	}
	if s[i] == '\'' {
		if i == 0 || s[i-1] == ' ' {
			return false
		}
		if isGerundDrop(s, i) {
			return false
		}
	}
	return true
}

// isGerundDrop reports whether the apostrophe at i ends a word like "lovin'".
func isGerundDrop(s string, i int) bool {
	if i < 3 || !strings.EqualFold(s[i-2:i], "in") {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(s[:i-2])
	return unicode.IsLetter(prev)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// relocate moves a clause written into the artist segment over to the song
// segment. The clause starts at the earliest relocation keyword or top-level
// bracket; a keyword inside a bracket moves the whole bracket. The clause is
// placed before the first bracket of the song, or appended when there is none.
func (e *Engine) relocate(artist, song string) (string, string, error) {
	spans := mustSpans(artist)
	cut := -1
	if m, ok := e.rules.find(artist, 0, func(r *rule) bool { return r.Relocate }); ok {
		cut = m.start
		for _, span := range spans {
			if m.start >= span.Start && m.start < span.End {
				cut = span.Start
				break
			}
		}
	}
	if len(spans) > 0 && (cut < 0 || spans[0].Start < cut) {
		cut = spans[0].Start
	}
	if cut < 0 {
		return artist, song, nil
	}

	moved := trimSeparators(artist[cut:])
	rest := strings.TrimRight(artist[:cut], artistTrailCutset)
	if rest == "" {
		return "", "", newError(ErrAmbiguousSegment, "relocate", cut, "artist segment is only an annotation")
	}

	if at := strings.IndexAny(song, "([{"); at >= 0 {
		song = song[:at] + " " + moved + " " + song[at:]
	} else {
		song = song + " " + moved
	}
	return rest, trimSeparators(collapseSpaces(song)), nil
}
