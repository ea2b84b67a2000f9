package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Artist - Song (feat. Other)", "Artist - Song (feat. Other)"},
		{"slashes", "AC/DC - Back In Black", "AC-DC - Back In Black"},
		{"removed characters", `Who? - "What" <Live> | Now`, "Who - What Live Now"},
		{"leading dots", "...Ready For It", "Ready For It"},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
