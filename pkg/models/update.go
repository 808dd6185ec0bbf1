package models

import "time"

// UpdateKind says which half of the snapshot a SnapshotUpdate announces
type UpdateKind string

const (
	UpdateMatches UpdateKind = "matches"
	UpdateDetails UpdateKind = "details"
)

// SnapshotUpdate is handed to downstream sinks after each publish
type SnapshotUpdate struct {
	Kind      UpdateKind         `json:"type"`
	League    string             `json:"league"`
	CycleID   string             `json:"cycle_id"`
	Timestamp time.Time          `json:"timestamp"`
	Matches   []LiveMatch        `json:"matches,omitempty"`
	Details   map[string]Details `json:"details,omitempty"`
}

// Count returns the number of entries the update carries
func (u SnapshotUpdate) Count() int {
	if u.Kind == UpdateDetails {
		return len(u.Details)
	}
	return len(u.Matches)
}
