package titlenorm

import (
	"strings"
	"testing"
)

func TestScanTransitions(t *testing.T) {
	engine := New()
	preserved, events, err := engine.scan("Song (Official Video) (Remix) | Lyric Video")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if preserved != "Song (Remix)" {
		t.Errorf("preserved = %q, want %q", preserved, "Song (Remix)")
	}
	want := []string{"drop (Official Video)", "keep (Remix)", `cut "Lyric Video"`}
	if strings.Join(events, "|") != strings.Join(want, "|") {
		t.Errorf("events = %q, want %q", events, want)
	}
}

func TestScanStepNeverRetreats(t *testing.T) {
	engine := New()
	inputs := []string{
		"Song ft Other Official Video",
		"Song (Remix) [Radio Edit] {x} Cover",
		"Song with you (Live) prod. by Someone | Free Download",
		"Song @ Somewhere (Official) (feat. X)",
	}
	for _, song := range inputs {
		state := scanState{}
		for steps := 0; !state.Committed; steps++ {
			if steps > len(song)+1 {
				t.Fatalf("scan of %q did not terminate", song)
			}
			next, err := engine.scanStep(state, song)
			if err != nil {
				t.Fatalf("scanStep(%q) error: %v", song, err)
			}
			if next.State.Cursor < state.Cursor {
				t.Fatalf("cursor moved back from %d to %d in %q", state.Cursor, next.State.Cursor, song)
			}
			if !next.State.Committed && next.State.Cursor == state.Cursor && len(next.Song) >= len(song) {
				t.Fatalf("step made no progress on %q at %d", song, state.Cursor)
			}
			state, song = next.State, next.Song
		}
	}
}

func TestScanTerminatesOnManyNoiseSpans(t *testing.T) {
	song := "Song" + strings.Repeat(" (Official)", 200)
	preserved, events, err := New().scan(song)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if preserved != "Song" {
		t.Errorf("preserved = %q", preserved)
	}
	if len(events) > len(song) {
		t.Errorf("scan took %d steps for %d bytes", len(events), len(song))
	}
}

func TestNoiseRemovalLeavesNoArtifacts(t *testing.T) {
	engine := New()
	inputs := []string{
		"Artist - (Official) Song (Video) Title [Audio]",
		"Artist - Song | Official Video",
		"Artist - Song, Official Audio",
		"Artist - Song (Remix), (Lyric Video)",
	}
	for _, in := range inputs {
		got, err := engine.Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", in, err)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("Normalize(%q) = %q has doubled spaces", in, got)
		}
		if strings.ContainsAny(got[len(got)-1:], ",|") || strings.ContainsAny(got[:1], ",|") {
			t.Errorf("Normalize(%q) = %q has dangling separator", in, got)
		}
	}
}
