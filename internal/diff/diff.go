// Package diff computes field-level differences between two flat snapshots
// of a trade. Date and time fields are excluded on purpose: they change as a
// side effect of nearly every transition and would drown out business-field
// changes in the audit trail.
package diff

import "strings"

// Change records one field's previous and new string value.
type Change struct {
	Previous string `json:"previous"`
	New      string `json:"new"`
}

// Compute returns the fields of before whose stringified values differ in
// after, excluding date/time fields. Keys missing from either side read as
// the empty string; callers are expected to pass snapshots sharing a field
// set, but a mismatch never panics.
func Compute(before, after map[string]string) map[string]Change {
	out := map[string]Change{}
	for field, prev := range before {
		if IsDateField(field) {
			continue
		}
		next := after[field]
		if prev != next {
			out[field] = Change{Previous: prev, New: next}
		}
	}
	for field, next := range after {
		if IsDateField(field) {
			continue
		}
		if _, seen := before[field]; seen {
			continue
		}
		if next != "" {
			out[field] = Change{Previous: "", New: next}
		}
	}
	return out
}

// IsDateField reports whether a snapshot field carries a date or time value.
// Trade snapshots name these *_date, *_at, or timestamp.
func IsDateField(name string) bool {
	if name == "timestamp" {
		return true
	}
	return strings.HasSuffix(name, "_date") || strings.HasSuffix(name, "_at")
}
