package renamer

import (
	"sort"
)

// Status is the outcome of one file in a plan.
type Status string

const (
	// StatusRenamed files get their normalized title.
	StatusRenamed Status = "renamed"
	// StatusUnchanged files already carry the normalized title.
	StatusUnchanged Status = "unchanged"
	// StatusFallback files failed to normalize and get the cleaned raw title.
	StatusFallback Status = "fallback"
	// StatusConflict files would collide with an existing or claimed name.
	StatusConflict Status = "conflict"
	// StatusFailed files failed to normalize or to rename.
	StatusFailed Status = "failed"
)

// Entry is the plan for a single file.
type Entry struct {
	OldName    string `json:"old_name"`
	NewName    string `json:"new_name"`
	RawTitle   string `json:"raw_title"`
	Normalized string `json:"normalized,omitempty"`
	VideoID    string `json:"video_id,omitempty"`
	Ext        string `json:"ext"`
	Status     Status `json:"status"`
	Err        error  `json:"-"`
}

// ErrorText returns the entry error message or an empty string.
func (e Entry) ErrorText() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Moves reports whether applying the entry renames a file.
func (e Entry) Moves() bool {
	return (e.Status == StatusRenamed || e.Status == StatusFallback) && e.OldName != e.NewName
}

// Plan lists the entries of one directory in name order.
type Plan struct {
	Dir     string  `json:"dir"`
	Entries []Entry `json:"entries"`
	// BatchID is set once the plan has been applied and journaled.
	BatchID string `json:"batch_id,omitempty"`
}

// Counts tallies entries by status.
func (p *Plan) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, e := range p.Entries {
		counts[e.Status]++
	}
	return counts
}

// Summary returns the non-zero status counts in a stable order.
func (p *Plan) Summary() []StatusCount {
	counts := p.Counts()
	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// StatusCount pairs a status with its number of entries.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}
