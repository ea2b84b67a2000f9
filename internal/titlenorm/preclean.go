package titlenorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Only spaced dashes become the delimiter; a glued dash (1999–2001) is part
// of a word.
var punctuationReplacer = strings.NewReplacer(
	" \u2013 ", " - ",
	" \u2014 ", " - ",
	" \u2012 ", " - ",
	"\u2018", "'",
	"\u2019", "'",
	"\u201a", "'",
	"\u201c", "\"",
	"\u201d", "\"",
	"\u201e", "\"",
)

var emptyPairPattern = regexp.MustCompile(`\(\s*\)|\[\s*\]|\{\s*\}`)

const separatorCutset = " ,|"

// preclean normalizes a raw title before any structural parsing: NFC form,
// ASCII quotes and spaced dashes, single spaces, doubled apostrophes, and one
// space between a bracket pair and the surrounding words.
func preclean(raw string) string {
	s := norm.NFC.String(raw)
	s = collapseSpaces(s)
	s = punctuationReplacer.Replace(s)
	for strings.Contains(s, "''") {
		s = strings.ReplaceAll(s, "''", "'")
	}
	s = emptyPairPattern.ReplaceAllString(s, "")
	s = spaceBrackets(s)
	s = collapseSpaces(s)
	return trimSeparators(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func trimSeparators(s string) string {
	return strings.Trim(s, separatorCutset)
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits s into bracket characters and the text runs between them.
func tokenize(s string) []token {
	var tokens []token
	start := 0
	for i := 0; i < len(s); i++ {
		_, open, ok := bracketOf(s[i])
		if !ok {
			continue
		}
		if i > start {
			tokens = append(tokens, token{kind: tokenText, text: s[start:i]})
		}
		kind := tokenClose
		if open {
			kind = tokenOpen
		}
		tokens = append(tokens, token{kind: kind, text: s[i : i+1]})
		start = i + 1
	}
	if start < len(s) {
		tokens = append(tokens, token{kind: tokenText, text: s[start:]})
	}
	return tokens
}

// spaceBrackets maps every token to its replacement pieces and flattens the
// result. The input token slice is never modified.
func spaceBrackets(s string) string {
	tokens := tokenize(s)
	pieces := make([][]string, len(tokens))
	for i, tok := range tokens {
		pieces[i] = respaceToken(tokens, i, tok)
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, group := range pieces {
		for _, piece := range group {
			b.WriteString(piece)
		}
	}
	return b.String()
}

func respaceToken(tokens []token, i int, tok token) []string {
	switch tok.kind {
	case tokenOpen:
		if i > 0 && gapBeforeOpen(tokens[i-1]) {
			return []string{" ", tok.text}
		}
		return []string{tok.text}
	case tokenClose:
		if i+1 < len(tokens) && gapAfterClose(tokens[i+1]) {
			return []string{tok.text, " "}
		}
		return []string{tok.text}
	default:
		text := tok.text
		if i > 0 && tokens[i-1].kind == tokenOpen {
			text = strings.TrimLeft(text, " ")
		}
		if i+1 < len(tokens) && tokens[i+1].kind == tokenClose {
			text = strings.TrimRight(text, " ")
		}
		return []string{text}
	}
}

func gapBeforeOpen(prev token) bool {
	switch prev.kind {
	case tokenClose:
		return true
	case tokenText:
		return !strings.HasSuffix(prev.text, " ")
	default:
		return false
	}
}

func gapAfterClose(next token) bool {
	if next.kind != tokenText {
		return false
	}
	r, _ := utf8.DecodeRuneInString(next.text)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
