package models

import "strings"

// TaskFilter is the criteria object handed to a TaskStore. Zero-value
// fields impose no constraint; supplied criteria are combined with AND.
// Unknown status/priority values are not rejected, they simply match
// nothing — validation belongs to the write path, not the query path.
type TaskFilter struct {
	Status   string
	Priority string
	Search   string // case-insensitive substring on title OR description
	Location string // case-insensitive substring on location
}

// IsZero reports whether the filter imposes no constraint at all.
func (f TaskFilter) IsZero() bool {
	return f.Status == "" && f.Priority == "" && f.Search == "" && f.Location == ""
}

// Matches reports whether t satisfies every supplied criterion.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != "" && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && string(t.Priority) != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(t.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}
