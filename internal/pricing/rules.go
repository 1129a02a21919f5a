// Package pricing resolves hourly rates for court time and turns
// reservation windows into priced quotes.
package pricing

import (
	"sort"
	"time"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/schedule"
)

// RulesFor filters a court's pricing rules down to those applicable on a
// date (weekday is nil or matches, validity bounds inclusive, nil bounds
// unbounded) and returns them in match order: day-specific rules before
// every-day rules, then most recent valid_from, then lowest price.
func RulesFor(rules []models.PricingRule, date time.Time) []models.PricingRule {
	weekday := models.WeekdayOf(date)
	day := dateOnly(date)

	matched := make([]models.PricingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Weekday != nil && *rule.Weekday != weekday {
			continue
		}
		if rule.ValidFrom != nil && day.Before(dateOnly(*rule.ValidFrom)) {
			continue
		}
		if rule.ValidTo != nil && day.After(dateOnly(*rule.ValidTo)) {
			continue
		}
		matched = append(matched, rule)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if (a.Weekday != nil) != (b.Weekday != nil) {
			return a.Weekday != nil
		}
		if !sameValidFrom(a.ValidFrom, b.ValidFrom) {
			return laterValidFrom(a.ValidFrom, b.ValidFrom)
		}
		return a.PricePerHour < b.PricePerHour
	})

	return matched
}

// MatchAt returns the first rule whose [start_time, end_time) contains
// the instant's local time-of-day, or nil.
func MatchAt(rules []models.PricingRule, instant time.Time) *models.PricingRule {
	minute := instant.Hour()*60 + instant.Minute()
	for i := range rules {
		start, end, ok := ruleClock(&rules[i])
		if !ok {
			continue
		}
		if minute >= start && minute < end {
			return &rules[i]
		}
	}
	return nil
}

// FullCover returns a rule only if that single rule's time range fully
// contains the window. Used by the slot generator, which wants one price
// per slot rather than a segmented one.
func FullCover(rules []models.PricingRule, window schedule.Interval) *models.PricingRule {
	startMinute := window.Start.Hour()*60 + window.Start.Minute()
	endMinute := startMinute + window.Minutes()
	for i := range rules {
		start, end, ok := ruleClock(&rules[i])
		if !ok {
			continue
		}
		if startMinute >= start && endMinute <= end {
			return &rules[i]
		}
	}
	return nil
}

// ruleClock parses a rule's clock bounds. Rows are validated on write,
// so a parse failure just makes the rule unmatchable.
func ruleClock(rule *models.PricingRule) (int, int, bool) {
	start, err := models.ParseClock(rule.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := models.ParseClock(rule.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameValidFrom(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return dateOnly(*a).Equal(dateOnly(*b))
}

// laterValidFrom orders a before b when a took effect more recently.
// A rule with a validity start outranks an open-ended one.
func laterValidFrom(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return dateOnly(*a).After(dateOnly(*b))
}
