package titlenorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Role is the positional behaviour of a keyword inside a title.
type Role int

const (
	// RolePrefix keywords open a clause that runs to the next stop token.
	RolePrefix Role = iota + 1
	// RoleSuffix keywords close a clause that began at the segment start.
	RoleSuffix
	// RoleNoise keywords mark text that is removed entirely.
	RoleNoise
)

func (r Role) String() string {
	switch r {
	case RolePrefix:
		return "prefix"
	case RoleSuffix:
		return "suffix"
	case RoleNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// ParseRole maps a configuration value onto a Role.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "prefix":
		return RolePrefix, nil
	case "suffix":
		return RoleSuffix, nil
	case "noise":
		return RoleNoise, nil
	default:
		return 0, fmt.Errorf("unknown keyword role %q", value)
	}
}

// AnnotationKind classifies a preserved clause.
type AnnotationKind int

const (
	KindOther AnnotationKind = iota
	KindFeature
	KindRemix
	KindCover
	KindProduction
	KindVersion
)

func (k AnnotationKind) String() string {
	switch k {
	case KindFeature:
		return "feature"
	case KindRemix:
		return "remix"
	case KindCover:
		return "cover"
	case KindProduction:
		return "production"
	case KindVersion:
		return "version"
	default:
		return "other"
	}
}

// MarshalText encodes the kind by name.
func (k AnnotationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps a configuration value onto an AnnotationKind. Empty input is
// KindOther.
func ParseKind(value string) (AnnotationKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "other":
		return KindOther, nil
	case "feature":
		return KindFeature, nil
	case "remix":
		return KindRemix, nil
	case "cover":
		return KindCover, nil
	case "production":
		return KindProduction, nil
	case "version":
		return KindVersion, nil
	default:
		return KindOther, fmt.Errorf("unknown annotation kind %q", value)
	}
}

// Keyword is one entry of the rule table. Matching is case-insensitive and
// bounded on word characters at either edge of Text. Priority breaks ties
// between keywords matching at the same offset; zero means the keyword length.
// Relocate keywords move a clause out of the artist segment. Wrap keywords are
// bracketed by the annotation normalizer when found outside brackets.
type Keyword struct {
	Text     string
	Role     Role
	Kind     AnnotationKind
	Priority int
	Relocate bool
	Wrap     bool
}

var defaultKeywords = []Keyword{
	{Text: "feat", Role: RolePrefix, Kind: KindFeature, Relocate: true, Wrap: true},
	{Text: "ft", Role: RolePrefix, Kind: KindFeature, Relocate: true, Wrap: true},
	{Text: "with", Role: RolePrefix, Kind: KindFeature, Relocate: true, Wrap: true},
	{Text: "produced by", Role: RolePrefix, Kind: KindProduction, Wrap: true},
	{Text: "prod by", Role: RolePrefix, Kind: KindProduction, Wrap: true},
	{Text: "prod. by", Role: RolePrefix, Kind: KindProduction, Wrap: true},
	{Text: "prod", Role: RolePrefix, Kind: KindProduction, Relocate: true, Wrap: true},
	{Text: "produced", Role: RolePrefix, Kind: KindProduction, Relocate: true},
	{Text: "cover by", Role: RolePrefix, Kind: KindCover, Wrap: true},
	{Text: "remix by", Role: RolePrefix, Kind: KindRemix, Wrap: true},

	{Text: "cover", Role: RoleSuffix, Kind: KindCover},
	{Text: "remix", Role: RoleSuffix, Kind: KindRemix},
	{Text: "mix", Role: RoleSuffix, Kind: KindRemix},
	{Text: "flip", Role: RoleSuffix, Kind: KindRemix},
	{Text: "version", Role: RoleSuffix, Kind: KindVersion},
	{Text: "ver", Role: RoleSuffix, Kind: KindVersion},
	{Text: "edition", Role: RoleSuffix, Kind: KindVersion},
	{Text: "edit", Role: RoleSuffix, Kind: KindVersion},
	{Text: "ncs release", Role: RoleSuffix},
	{Text: "ncs", Role: RoleSuffix, Relocate: true},

	{Text: "official", Role: RoleNoise},
	{Text: "official remix", Role: RoleNoise},
	{Text: "lyric", Role: RoleNoise},
	{Text: "lyrics", Role: RoleNoise},
	{Text: "ultra", Role: RoleNoise},
	{Text: "edm music", Role: RoleNoise},
	{Text: "dance music", Role: RoleNoise},
	{Text: "pop music", Role: RoleNoise},
	{Text: "video", Role: RoleNoise},
	{Text: "audio", Role: RoleNoise},
	{Text: "record", Role: RoleNoise},
	{Text: "vocal", Role: RoleNoise},
	{Text: "free download", Role: RoleNoise},
	{Text: "free dl", Role: RoleNoise},
	{Text: "download", Role: RoleNoise},
	{Text: "bbc", Role: RoleNoise},
	{Text: "radio", Role: RoleNoise},
	{Text: "acoustic", Role: RoleNoise},
	{Text: "original", Role: RoleNoise},
	{Text: "demo", Role: RoleNoise},
	{Text: "@", Role: RoleNoise},
	{Text: "out now", Role: RoleNoise},
	{Text: "vip", Role: RoleNoise},
	{Text: "premiere", Role: RoleNoise},
	{Text: "bootleg", Role: RoleNoise},
	{Text: "buy now", Role: RoleNoise},
}

// DefaultKeywords returns a copy of the built-in vocabulary.
func DefaultKeywords() []Keyword {
	out := make([]Keyword, len(defaultKeywords))
	copy(out, defaultKeywords)
	return out
}

type rule struct {
	Keyword
	pattern *regexp.Regexp
}

// Rules is a compiled, read-only keyword table.
type Rules struct {
	rules []rule
}

type match struct {
	rule  *rule
	start int
	end   int
}

var defaultRules = mustRules(defaultKeywords)

// DefaultRules returns the compiled built-in vocabulary.
func DefaultRules() *Rules { return defaultRules }

func mustRules(keywords []Keyword) *Rules {
	rules, err := NewRules(keywords)
	if err != nil {
		panic(err)
	}
	return rules
}

// NewRules compiles keywords into a rule table. Later entries with the same
// text and role replace earlier ones.
func NewRules(keywords []Keyword) (*Rules, error) {
	index := make(map[string]int, len(keywords))
	compiled := make([]rule, 0, len(keywords))
	for _, kw := range keywords {
		kw.Text = strings.Join(strings.Fields(strings.ToLower(kw.Text)), " ")
		if kw.Text == "" {
			return nil, fmt.Errorf("keyword text must not be empty")
		}
		if kw.Role < RolePrefix || kw.Role > RoleNoise {
			return nil, fmt.Errorf("keyword %q: invalid role %d", kw.Text, kw.Role)
		}
		if kw.Priority == 0 {
			kw.Priority = utf8.RuneCountInString(kw.Text)
		}
		pattern, err := compileKeyword(kw.Text)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", kw.Text, err)
		}
		key := kw.Role.String() + "\x00" + kw.Text
		if at, ok := index[key]; ok {
			compiled[at] = rule{Keyword: kw, pattern: pattern}
			continue
		}
		index[key] = len(compiled)
		compiled = append(compiled, rule{Keyword: kw, pattern: pattern})
	}
	return &Rules{rules: compiled}, nil
}

// Extend returns a new table with extra appended to the current keywords.
func (r *Rules) Extend(extra []Keyword) (*Rules, error) {
	if len(extra) == 0 {
		return r, nil
	}
	return NewRules(append(r.Keywords(), extra...))
}

// Keywords returns the table entries in their normalized form.
func (r *Rules) Keywords() []Keyword {
	out := make([]Keyword, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, rl.Keyword)
	}
	return out
}

func compileKeyword(text string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)")
	if isWordByte(text[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(text))
	if isWordByte(text[len(text)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.Compile(b.String())
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// find returns the earliest match starting at or after from among rules
// accepted by keep. Matches at the same offset prefer the higher priority.
func (r *Rules) find(s string, from int, keep func(*rule) bool) (match, bool) {
	best := match{start: -1}
	for i := range r.rules {
		rl := &r.rules[i]
		if !keep(rl) {
			continue
		}
		for _, loc := range rl.pattern.FindAllStringIndex(s, -1) {
			if loc[0] < from {
				continue
			}
			if best.start < 0 || loc[0] < best.start ||
				loc[0] == best.start && rl.Priority > best.rule.Priority {
				best = match{rule: rl, start: loc[0], end: loc[1]}
			}
			break
		}
	}
	return best, best.start >= 0
}

func (r *Rules) findRole(s string, from int, roles ...Role) (match, bool) {
	return r.find(s, from, func(rl *rule) bool {
		for _, role := range roles {
			if rl.Role == role {
				return true
			}
		}
		return false
	})
}

func (r *Rules) hasRole(s string, role Role) bool {
	_, ok := r.findRole(s, 0, role)
	return ok
}

// classify returns the annotation kind of the first annotation keyword in s.
func (r *Rules) classify(s string) AnnotationKind {
	m, ok := r.findRole(s, 0, RolePrefix, RoleSuffix)
	if !ok {
		return KindOther
	}
	return m.rule.Kind
}
