package titlenorm

import "testing"

func TestNewRulesValidation(t *testing.T) {
	tests := []struct {
		name     string
		keywords []Keyword
		wantErr  bool
	}{
		{"valid", []Keyword{{Text: "live", Role: RoleNoise}}, false},
		{"empty text", []Keyword{{Text: "  ", Role: RoleNoise}}, true},
		{"missing role", []Keyword{{Text: "live"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRules(tt.keywords)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRules() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRulesReplaceDuplicates(t *testing.T) {
	rules, err := NewRules([]Keyword{
		{Text: "Live", Role: RoleNoise},
		{Text: "live", Role: RoleNoise, Priority: 42},
	})
	if err != nil {
		t.Fatalf("NewRules error: %v", err)
	}
	kws := rules.Keywords()
	if len(kws) != 1 || kws[0].Priority != 42 {
		t.Errorf("Keywords() = %+v, want single replaced entry", kws)
	}
}

func TestRulesFindPrefersLongerAtSameOffset(t *testing.T) {
	m, ok := DefaultRules().findRole("song prod. by someone", 0, RolePrefix)
	if !ok {
		t.Fatal("expected a prefix match")
	}
	if m.rule.Text != "prod. by" || m.start != 5 || m.end != 13 {
		t.Errorf("find() = %q [%d,%d), want \"prod. by\" [5,13)", m.rule.Text, m.start, m.end)
	}
}

func TestRulesWholeWordMatching(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		input string
		role  Role
		want  bool
	}{
		{"without you", RolePrefix, false},
		{"dance with me", RolePrefix, true},
		{"remixed", RoleSuffix, false},
		{"club mix", RoleSuffix, true},
		{"me@home", RoleNoise, true},
		{"videos", RoleNoise, false},
		{"LYRICS", RoleNoise, true},
	}
	for _, tt := range tests {
		if got := rules.hasRole(tt.input, tt.role); got != tt.want {
			t.Errorf("hasRole(%q, %s) = %v, want %v", tt.input, tt.role, got, tt.want)
		}
	}
}

func TestParseRoleAndKind(t *testing.T) {
	if role, err := ParseRole(" Noise "); err != nil || role != RoleNoise {
		t.Errorf("ParseRole() = %v, %v", role, err)
	}
	if _, err := ParseRole("middle"); err == nil {
		t.Error("expected error for unknown role")
	}
	if kind, err := ParseKind(""); err != nil || kind != KindOther {
		t.Errorf("ParseKind(\"\") = %v, %v", kind, err)
	}
	if kind, err := ParseKind("Remix"); err != nil || kind != KindRemix {
		t.Errorf("ParseKind(Remix) = %v, %v", kind, err)
	}
}

func TestDedupTransitive(t *testing.T) {
	shareRune := func(a, b string) float64 {
		for _, r := range a {
			for _, q := range b {
				if r == q {
					return 0.9
				}
			}
		}
		return 0
	}
	engine := New(WithSimilarity(shareRune, 0.8))
	got, dropped := engine.dedup("Song (aa) (ab) (bb)")
	if got != "Song (aa)" {
		t.Errorf("dedup() = %q, want %q", got, "Song (aa)")
	}
	if len(dropped) != 2 {
		t.Errorf("dropped = %q, want two spans", dropped)
	}
}

func TestDedupKeepsDistinctCredits(t *testing.T) {
	got, _ := New().dedup("Song (feat. Someone) (Extended Remix)")
	if got != "Song (feat. Someone) (Extended Remix)" {
		t.Errorf("dedup() = %q", got)
	}
}
