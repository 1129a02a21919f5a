package schedule

import (
	"fmt"
	"time"
)

// Window is a resolved open/close pair for one date, as minutes after
// midnight local time.
type Window struct {
	OpenMinutes  int
	CloseMinutes int
}

// OnDate materialises the window as a concrete interval on the given
// local date. midnight must be 00:00 of that date in the facility zone.
func (w Window) OnDate(midnight time.Time) Interval {
	return Interval{
		Start: midnight.Add(time.Duration(w.OpenMinutes) * time.Minute),
		End:   midnight.Add(time.Duration(w.CloseMinutes) * time.Minute),
	}
}

// Tile cuts free intervals into consecutive fixed-size slots. Only slots
// that fit entirely inside a free interval are emitted; a partial
// trailing remainder is discarded.
func Tile(free []Interval, slotMinutes int) []Interval {
	if slotMinutes <= 0 {
		return nil
	}

	size := time.Duration(slotMinutes) * time.Minute
	var slots []Interval
	for _, iv := range free {
		for cursor := iv.Start; !cursor.Add(size).After(iv.End); cursor = cursor.Add(size) {
			slots = append(slots, Interval{Start: cursor, End: cursor.Add(size)})
		}
	}

	return slots
}

// Label formats a slot interval as "HH:MM - HH:MM" local wall-clock
func Label(iv Interval) string {
	return fmt.Sprintf("%s - %s", iv.Start.Format("15:04"), iv.End.Format("15:04"))
}

// DayBounds returns midnight and next midnight of a local date.
// time.Date normalises DST gaps, so the pair is safe across changes.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return midnight, midnight.AddDate(0, 0, 1)
}
