package titlenorm

import (
	"testing"

	"retitle/internal/config"
)

func TestNewFromConfigExtendsKeywords(t *testing.T) {
	cfg := config.Default().Engine
	cfg.Keywords = []config.KeywordConfig{{Text: "live session", Role: "noise"}}

	engine, err := NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	got, err := engine.Normalize("Artist - Song (Live Session) (ft Other)")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if want := "Artist - Song (feat. Other)"; got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNewFromConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Engine)
	}{
		{"metric", func(c *config.Engine) { c.SimilarityMetric = "soundex" }},
		{"language", func(c *config.Engine) { c.Language = "not a tag!" }},
		{"role", func(c *config.Engine) { c.Keywords = []config.KeywordConfig{{Text: "x", Role: "middle"}} }},
		{"kind", func(c *config.Engine) { c.Keywords = []config.KeywordConfig{{Text: "x", Role: "noise", Kind: "sample"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Engine
			tt.mutate(&cfg)
			if _, err := NewFromConfig(cfg, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}
