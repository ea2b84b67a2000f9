package titlenorm

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"retitle/internal/logging"
	"retitle/internal/textutil"
)

// DefaultSimilarityThreshold is the ratio above which two annotations are
// treated as duplicates.
const DefaultSimilarityThreshold = 0.8

// DefaultPronouns are the object pronouns after which "with" is part of the
// title rather than a featuring credit.
var DefaultPronouns = []string{"you", "me", "him", "her", "us", "them", "u", "it"}

// SimilarityFunc scores two strings in [0,1].
type SimilarityFunc func(a, b string) float64

// Engine normalizes titles. It is immutable once built.
type Engine struct {
	rules      *Rules
	similarity SimilarityFunc
	threshold  float64
	lang       language.Tag
	pronouns   map[string]struct{}
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the keyword table.
func WithRules(rules *Rules) Option {
	return func(e *Engine) {
		if rules != nil {
			e.rules = rules
		}
	}
}

// WithSimilarity sets the duplicate-annotation metric and threshold.
func WithSimilarity(fn SimilarityFunc, threshold float64) Option {
	return func(e *Engine) {
		if fn != nil {
			e.similarity = fn
		}
		if threshold > 0 {
			e.threshold = threshold
		}
	}
}

// WithLanguage sets the casing rules used for capitalization.
func WithLanguage(tag language.Tag) Option {
	return func(e *Engine) { e.lang = tag }
}

// WithPronouns replaces the object pronoun list.
func WithPronouns(words []string) Option {
	return func(e *Engine) {
		if len(words) == 0 {
			return
		}
		e.pronouns = pronounSet(words)
	}
}

// WithLogger routes pipeline traces to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logging.NewComponentLogger(logger, "titlenorm") }
}

// New builds an engine with the default vocabulary, the LCS similarity metric,
// and English casing unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:      DefaultRules(),
		similarity: textutil.LCSSimilarity,
		threshold:  DefaultSimilarityThreshold,
		lang:       language.English,
		pronouns:   pronounSet(DefaultPronouns),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func pronounSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// Rules returns the engine's keyword table.
func (e *Engine) Rules() *Rules { return e.rules }

// Annotation is a bracketed clause of a normalized title.
type Annotation struct {
	Kind AnnotationKind `json:"kind"`
	Text string         `json:"text"`
}

// Step records one intermediate value of the pipeline.
type Step struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Result is the detailed outcome of Explain.
type Result struct {
	Input       string       `json:"input"`
	Output      string       `json:"output"`
	Artist      string       `json:"artist"`
	Title       string       `json:"title"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Steps       []Step       `json:"steps,omitempty"`
}

// Normalize returns the canonical form of raw.
func (e *Engine) Normalize(raw string) (string, error) {
	res, err := e.Explain(raw)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Explain normalizes raw and reports every intermediate value. On error the
// returned Result holds the steps completed before the failure.
func (e *Engine) Explain(raw string) (Result, error) {
	res := Result{Input: raw}
	record := func(name, value string) {
		res.Steps = append(res.Steps, Step{Name: name, Value: value})
		e.logger.Debug("normalize step",
			logging.String("step", name),
			logging.String("value", value),
		)
	}

	s := preclean(raw)
	record("preclean", s)
	if s == "" {
		return res, newError(ErrAmbiguousSegment, "preclean", -1, "empty title")
	}
	if _, err := MatchSpans(s); err != nil {
		return res, err
	}

	artist, song, err := splitSegments(s)
	if err != nil {
		return res, err
	}
	record("split", artist+" | "+song)

	if song, err = unquote(song); err != nil {
		return res, err
	}
	record("unquote", song)

	if artist, song, err = e.relocate(artist, song); err != nil {
		return res, err
	}
	record("relocate", artist+" | "+song)

	preserved, events, err := e.scan(song)
	for _, event := range events {
		record("scan", event)
	}
	if err != nil {
		return res, err
	}
	if preserved == "" {
		return res, newError(ErrAmbiguousSegment, "scan", 0, "nothing left of song segment")
	}
	record("preserved", preserved)

	annotated := e.annotate(preserved)
	record("annotate", annotated)

	deduped, dropped := e.dedup(annotated)
	for _, d := range dropped {
		record("dedup", "drop "+d)
	}

	caps := e.newCapitalizer()
	title, err := caps.words(deduped, capitalizeMode{hyphens: true, connectives: true})
	if err != nil {
		return res, err
	}
	if !hasUpper(raw) {
		if artist, err = caps.words(artist, capitalizeMode{}); err != nil {
			return res, err
		}
	}
	record("capitalize", title)

	res.Artist = trimSeparators(artist)
	res.Title = trimSeparators(title)
	res.Output = res.Artist + Delimiter + res.Title
	res.Annotations = e.annotations(res.Title)
	return res, nil
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}
