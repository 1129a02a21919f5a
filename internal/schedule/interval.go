// Package schedule implements the pure time arithmetic behind availability:
// half-open interval algebra, operating-window resolution and slot tiling.
package schedule

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty reports whether the interval contains no instants
func (iv Interval) IsEmpty() bool {
	return !iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals share any instant
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Minutes returns the interval's length in whole minutes
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// Merge folds intervals into a minimal ascending set of non-overlapping
// intervals. Touching intervals merge; empty intervals are dropped. The
// input slice is not modified. Merge is idempotent.
func Merge(intervals []Interval) []Interval {
	work := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			work = append(work, iv)
		}
	}
	if len(work) == 0 {
		return nil
	}

	sort.Slice(work, func(i, j int) bool {
		return work[i].Start.Before(work[j].Start)
	})

	merged := []Interval{work[0]}
	for _, iv := range work[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// Subtract removes a sorted, merged occupied list from a single base
// interval and returns the ordered free sub-intervals. The union of the
// result and the occupied intervals clipped to base reconstructs base.
func Subtract(base Interval, occupied []Interval) []Interval {
	if base.IsEmpty() {
		return nil
	}

	var free []Interval
	cursor := base.Start

	for _, occ := range occupied {
		if !occ.End.After(cursor) {
			continue
		}
		if !occ.Start.Before(base.End) {
			break
		}
		if occ.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: minTime(occ.Start, base.End)})
		}
		if occ.End.After(cursor) {
			cursor = occ.End
		}
		if !cursor.Before(base.End) {
			return free
		}
	}

	if cursor.Before(base.End) {
		free = append(free, Interval{Start: cursor, End: base.End})
	}

	return free
}

// Clip intersects an interval with [dayStart, dayEnd). The second return
// value is false when they are disjoint.
func Clip(iv Interval, dayStart, dayEnd time.Time) (Interval, bool) {
	start := maxTime(iv.Start, dayStart)
	end := minTime(iv.End, dayEnd)
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
