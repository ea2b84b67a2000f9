package renamer

import (
	"path/filepath"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ParseName splits a file name into its title, optional video identifier, and
// extension (without the dot).
func ParseName(name string) (title, videoID, ext string) {
	dotExt := filepath.Ext(name)
	stem := strings.TrimSuffix(name, dotExt)
	ext = strings.TrimPrefix(dotExt, ".")
	if stem == "" {
		// ".mp3" style names have no extension, only a stem.
		return name, "", ""
	}
	if i := strings.LastIndexByte(stem, '#'); i > 0 && videoIDPattern.MatchString(stem[i+1:]) {
		return stem[:i], stem[i+1:], ext
	}
	return stem, "", ext
}

// BuildName is the inverse of ParseName.
func BuildName(title, videoID, ext string) string {
	var b strings.Builder
	b.WriteString(title)
	if videoID != "" {
		b.WriteByte('#')
		b.WriteString(videoID)
	}
	if ext != "" {
		b.WriteByte('.')
		b.WriteString(ext)
	}
	return b.String()
}

func matchesExtension(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == ext {
			return true
		}
	}
	return false
}
