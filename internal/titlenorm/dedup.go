package titlenorm

import "strings"

// dedup drops every top-level span whose case-folded content is more similar
// than the engine threshold to any earlier span. Earlier spans count whether
// or not they were themselves dropped.
func (e *Engine) dedup(song string) (string, []string) {
	spans := mustSpans(song)
	if len(spans) < 2 {
		return song, nil
	}
	folded := make([]string, len(spans))
	for i, span := range spans {
		folded[i] = strings.ToLower(strings.TrimSpace(span.Content))
	}

	var drop []int
	for j := 1; j < len(spans); j++ {
		for i := 0; i < j; i++ {
			if e.similarity(folded[i], folded[j]) > e.threshold {
				drop = append(drop, j)
				break
			}
		}
	}

	dropped := make([]string, 0, len(drop))
	for k := len(drop) - 1; k >= 0; k-- {
		span := spans[drop[k]]
		dropped = append(dropped, song[span.Start:span.End])
		song = cutSpan(song, span, 0)
	}
	return song, dropped
}
