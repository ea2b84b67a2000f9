package titlenorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// contractionSuffixes follow an apostrophe that belongs to the word.
var contractionSuffixes = map[string]struct{}{
	"ve": {}, "s": {}, "d": {}, "ll": {}, "t": {}, "m": {}, "re": {},
}

type capitalizeMode struct {
	hyphens     bool
	connectives bool
}

type cased struct {
	text   string
	inside bool
}

// capitalizer holds per-call casers; cases.Caser values are stateful.
type capitalizer struct {
	e     *Engine
	lower cases.Caser
	upper cases.Caser
}

func (e *Engine) newCapitalizer() *capitalizer {
	return &capitalizer{e: e, lower: cases.Lower(e.lang), upper: cases.Upper(e.lang)}
}

// Capitalize re-cases a song title with the engine's word rules.
func (e *Engine) Capitalize(title string) (string, error) {
	return e.newCapitalizer().words(title, capitalizeMode{hyphens: true, connectives: true})
}

func (c *capitalizer) words(s string, mode capitalizeMode) (string, error) {
	parts := strings.Split(s, " ")
	out := make([]cased, len(parts))
	depth, offset := 0, 0
	for i, w := range parts {
		if w == "" {
			return "", newError(ErrMalformedToken, "capitalize", offset, "empty word")
		}
		inside := depth > 0 || isOpenBracket(w[0])
		out[i] = cased{text: c.word(w, mode.hyphens && !inside), inside: inside}
		depth += bracketDelta(w)
		if depth < 0 {
			depth = 0
		}
		offset += len(w) + 1
	}
	if mode.connectives {
		c.lowerConnectives(out)
	}
	texts := make([]string, len(out))
	for i, w := range out {
		texts[i] = w.text
	}
	return strings.Join(texts, " "), nil
}

func bracketDelta(w string) int {
	delta := 0
	for i := 0; i < len(w); i++ {
		if _, open, ok := bracketOf(w[i]); ok {
			if open {
				delta++
			} else {
				delta--
			}
		}
	}
	return delta
}

// word capitalizes one space-delimited word. Leading punctuation is kept
// outside the capitalization; non-contraction apostrophes and, when hyphens is
// set, hyphens split the word into independently cased fragments.
func (c *capitalizer) word(w string, hyphens bool) string {
	at := strings.IndexFunc(w, isWordRune)
	if at < 0 {
		return w
	}
	lead, body := w[:at], w[at:]

	var b strings.Builder
	b.WriteString(lead)
	for i, piece := range splitApostrophes(body) {
		if i > 0 {
			b.WriteByte('\'')
		}
		if !hyphens {
			b.WriteString(c.fragment(piece))
			continue
		}
		for j, sub := range strings.Split(piece, "-") {
			if j > 0 {
				b.WriteByte('-')
			}
			b.WriteString(c.fragment(sub))
		}
	}
	return b.String()
}

// splitApostrophes splits body at apostrophes that are neither a known
// contraction nor a dropped-g ending.
func splitApostrophes(body string) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(body); i++ {
		if body[i] != '\'' || i == 0 || i == len(body)-1 {
			continue
		}
		suffix := strings.ToLower(leadingLetters(body[i+1:]))
		if _, ok := contractionSuffixes[suffix]; ok {
			continue
		}
		if suffix == "" || isGerundDrop(body, i) {
			continue
		}
		pieces = append(pieces, body[start:i])
		start = i + 1
	}
	return append(pieces, body[start:])
}

func leadingLetters(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

// fragment upper-cases the first letter of an all-lower-case fragment.
// All-upper and mixed-case fragments are stylized and left alone.
func (c *capitalizer) fragment(f string) string {
	if f == "" || c.lower.String(f) != f {
		return f
	}
	r, size := utf8.DecodeRuneInString(f)
	if !unicode.IsLetter(r) {
		return f
	}
	return c.upper.String(f[:size]) + f[size:]
}

// lowerConnectives lower-cases credit phrases and connective words after
// capitalization. "with" stays capitalized when it belongs to the title; it
// and its object are lowered before a pronoun. "and" and "of" are lowered
// only inside brackets.
func (c *capitalizer) lowerConnectives(words []cased) {
	core := func(i int) string {
		if i >= len(words) {
			return ""
		}
		w := strings.TrimLeft(words[i].text, "([{\"'-")
		return c.lower.String(strings.TrimRight(w, ")]},"))
	}
	lowerAt := func(i int) {
		words[i].text = c.lower.String(words[i].text)
	}
	for i := range words {
		switch core(i) {
		case "feat.":
			lowerAt(i)
		case "cover", "remix", "produced", "prod", "prod.":
			if core(i+1) == "by" {
				lowerAt(i)
				lowerAt(i + 1)
			}
		case "with":
			switch {
			case words[i].inside:
				lowerAt(i)
			case i+1 < len(words) && !words[i+1].inside && c.e.isPronoun(core(i+1)):
				lowerAt(i)
				lowerAt(i + 1)
			}
		case "and", "of":
			if words[i].inside {
				lowerAt(i)
			}
		}
	}
}
