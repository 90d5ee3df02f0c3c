// Package extraction contains the pure business logic for the action
// extraction lifecycle: note identity, status transitions and remote error
// classification. Functions here have no side effects.
package extraction

import "time"

// NoteID derives the matching identity for a note from its text and
// creation time. Notes have no surrogate key, so this pair is used to match
// a note across extraction cycles and API round-trips. A zero creation time
// contributes an empty timestamp component.
//
// Known gap: two distinct notes with identical text created in the same
// timestamp are indistinguishable.
func NoteID(text string, createdAt time.Time) string {
	if createdAt.IsZero() {
		return text + "_"
	}
	return text + "_" + createdAt.UTC().Format(time.RFC3339)
}

// NoteIDFromWire derives the identity for a note echoed by the remote
// service, where the creation time is an already-formatted timestamp string
// (or empty when absent).
func NoteIDFromWire(text, createdAt string) string {
	return text + "_" + createdAt
}

// UnionIDs returns base extended with any ids not already present,
// preserving order of first appearance. Used for the ledger's monotonic
// processed-note set.
func UnionIDs(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, id := range base {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range extra {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
