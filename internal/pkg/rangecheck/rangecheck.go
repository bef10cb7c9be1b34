// Package rangecheck validates a full set of numeric intervals as a unit.
package rangecheck

import "cmp"

type Conflict string

const (
	None         Conflict = ""
	InvalidRange Conflict = "invalid_range"
	Duplicate    Conflict = "duplicate"
	Overlap      Conflict = "overlap"
)

// Check reports the first conflict found in items, in priority order:
// any min > max, then any identical pair, then any intersecting pair.
// Bounds are inclusive on both ends.
func Check[T any, N cmp.Ordered](items []T, minOf, maxOf func(T) N) Conflict {
	for _, it := range items {
		if minOf(it) > maxOf(it) {
			return InvalidRange
		}
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if minOf(items[i]) == minOf(items[j]) && maxOf(items[i]) == maxOf(items[j]) {
				return Duplicate
			}
		}
	}
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if minOf(a) <= maxOf(b) && minOf(b) <= maxOf(a) {
				return Overlap
			}
		}
	}
	return None
}
