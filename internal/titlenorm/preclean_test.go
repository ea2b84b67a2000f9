package titlenorm

import "testing"

func TestPreclean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaced en dash", "Artist  –  Song", "Artist - Song"},
		{"spaced em dash", "Artist — Song", "Artist - Song"},
		{"glued em dash kept", "Song\u2014Other", "Song\u2014Other"},
		{"glued en dash range kept", "Artist - Hits 1999\u20132001", "Artist - Hits 1999\u20132001"},
		{"inner bracket spaces", "Artist - Song ( Remix )", "Artist - Song (Remix)"},
		{"glued brackets", "Artist - Song(Remix)[Live]", "Artist - Song (Remix) [Live]"},
		{"word after close", "Artist - (Intro)Song", "Artist - (Intro) Song"},
		{"doubled apostrophe", "Artist - Don''t", "Artist - Don't"},
		{"smart quotes", "Artist - ‘Song’ “Live”", "Artist - 'Song' \"Live\""},
		{"edge separators", "| Artist - Song ,", "Artist - Song"},
		{"empty pair", "Artist - Song ()", "Artist - Song"},
		{"tabs and newlines", "Artist\t-\nSong", "Artist - Song"},
		{"decomposed accents", "Beyonce\u0301 - Song", "Beyonc\u00e9 - Song"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preclean(tt.input); got != tt.want {
				t.Errorf("preclean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSpaceBracketsLeavesInputTokensIntact(t *testing.T) {
	in := "a(b)c"
	tokens := tokenize(in)
	before := make([]token, len(tokens))
	copy(before, tokens)
	if got := spaceBrackets(in); got != "a (b) c" {
		t.Fatalf("spaceBrackets(%q) = %q", in, got)
	}
	for i := range tokens {
		if tokens[i] != before[i] {
			t.Fatalf("token %d changed: %+v -> %+v", i, before[i], tokens[i])
		}
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantArtist string
		wantSong   string
	}{
		{"simple", "A - B", "A", "B"},
		{"extra delimiters joined", "A - B - C", "A", "B C"},
		{"delimiter inside bracket ignored", "A (x - y) - B", "A (x - y)", "B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, song, err := splitSegments(tt.input)
			if err != nil {
				t.Fatalf("splitSegments(%q) error: %v", tt.input, err)
			}
			if artist != tt.wantArtist || song != tt.wantSong {
				t.Errorf("splitSegments(%q) = %q, %q; want %q, %q", tt.input, artist, song, tt.wantArtist, tt.wantSong)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"Song" (Remix)`, "Song (Remix)"},
		{"'Song'", "Song"},
		{"Don't Stop", "Don't Stop"},
		{"Rockin' 'Round", "Rockin' 'Round"},
		{"(\"Live\") Song", "(\"Live\") Song"},
		{"Rock 'n' Roll", "Rock 'n' Roll"},
		{"I'm 'Fine'", "I'm 'Fine'"},
		{`The "Best" Song`, `The "Best" Song`},
		{`(Live) "Song"`, "(Live) Song"},
		{"'Don't Stop'", "Don't Stop"},
	}
	for _, tt := range tests {
		got, err := unquote(tt.input)
		if err != nil {
			t.Fatalf("unquote(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("unquote(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
