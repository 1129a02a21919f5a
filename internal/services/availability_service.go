package services

import (
	"fmt"
	"math"
	"time"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/pricing"
	"github.com/sporthub/court-booking-backend/internal/schedule"
)

// AvailabilityService computes free bookable slots for courts
type AvailabilityService struct {
	courts       CourtStore
	hours        HoursStore
	blocks       BlockStore
	reservations ReservationStore
	rules        PricingRuleStore
	loc          *time.Location
	defaults     schedule.Window
}

// NewAvailabilityService creates a new availability service. The default
// window applies when neither the court nor its complex define hours.
func NewAvailabilityService(courts CourtStore, hours HoursStore, blocks BlockStore,
	reservations ReservationStore, rules PricingRuleStore,
	loc *time.Location, defaults schedule.Window) *AvailabilityService {
	return &AvailabilityService{
		courts:       courts,
		hours:        hours,
		blocks:       blocks,
		reservations: reservations,
		rules:        rules,
		loc:          loc,
		defaults:     defaults,
	}
}

// ParseDate parses a YYYY-MM-DD value in the facility timezone
func (s *AvailabilityService) ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", value, s.loc)
	if err != nil {
		return time.Time{}, models.NewValidationError("date must be YYYY-MM-DD")
	}
	return date, nil
}

// ResolveWindow resolves the open/close window for a court and date:
// court-specific hours first, then the complex fallback, then the
// configured default.
func (s *AvailabilityService) ResolveWindow(court *models.Court, date time.Time) (schedule.Window, error) {
	weekday := models.WeekdayOf(date)

	row, err := s.hours.FindForCourt(court.ID, weekday)
	if err != nil {
		return schedule.Window{}, err
	}
	if row == nil {
		row, err = s.hours.FindForComplex(court.ComplexID, weekday)
		if err != nil {
			return schedule.Window{}, err
		}
	}
	if row == nil {
		return s.defaults, nil
	}

	open, err := models.ParseClock(row.OpenTime)
	if err != nil {
		return schedule.Window{}, fmt.Errorf("corrupt open_time on operating hours %d: %w", row.ID, err)
	}
	close, err := models.ParseClock(row.CloseTime)
	if err != nil {
		return schedule.Window{}, fmt.Errorf("corrupt close_time on operating hours %d: %w", row.ID, err)
	}

	return schedule.Window{OpenMinutes: open, CloseMinutes: close}, nil
}

// DaySlots returns the bookable slots for one court and date
func (s *AvailabilityService) DaySlots(courtID int64, date time.Time, slotMinutes int) ([]models.Slot, error) {
	if slotMinutes <= 0 {
		return nil, models.NewValidationError("slot_minutes must be positive")
	}

	court, err := s.courts.GetByID(courtID)
	if err != nil {
		return nil, err
	}
	if !court.Active {
		return nil, fmt.Errorf("court %d is inactive: %w", courtID, models.ErrNotFound)
	}

	rules, err := s.rules.ListForCourt(court.ID)
	if err != nil {
		return nil, err
	}

	return s.daySlots(court, rules, date, slotMinutes)
}

// RangeSlots returns slots per date for [dateFrom, dateTo], keyed by
// YYYY-MM-DD. Each day is computed independently.
func (s *AvailabilityService) RangeSlots(courtID int64, dateFrom, dateTo time.Time, slotMinutes int) (map[string][]models.Slot, error) {
	if slotMinutes <= 0 {
		return nil, models.NewValidationError("slot_minutes must be positive")
	}
	if dateTo.Before(dateFrom) {
		return nil, models.NewValidationError("date_to must not precede date")
	}

	court, err := s.courts.GetByID(courtID)
	if err != nil {
		return nil, err
	}
	if !court.Active {
		return nil, fmt.Errorf("court %d is inactive: %w", courtID, models.ErrNotFound)
	}

	rules, err := s.rules.ListForCourt(court.ID)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Slot)
	for day := dateFrom; !day.After(dateTo); day = day.AddDate(0, 0, 1) {
		slots, err := s.daySlots(court, rules, day, slotMinutes)
		if err != nil {
			return nil, err
		}
		result[day.Format("2006-01-02")] = slots
	}

	return result, nil
}

func (s *AvailabilityService) daySlots(court *models.Court, rules []models.PricingRule, date time.Time, slotMinutes int) ([]models.Slot, error) {
	window, err := s.ResolveWindow(court, date)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := schedule.DayBounds(date, s.loc)
	open := window.OnDate(dayStart)

	occupied, err := s.collectOccupancy(court.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	free := schedule.Subtract(open, schedule.Merge(occupied))
	tiles := schedule.Tile(free, slotMinutes)
	applicable := pricing.RulesFor(rules, date)

	slots := make([]models.Slot, 0, len(tiles))
	for _, tile := range tiles {
		slot := models.Slot{
			Start: tile.Start,
			End:   tile.End,
			Label: schedule.Label(tile),
		}
		if rule := pricing.FullCover(applicable, tile); rule != nil {
			price := math.Round(rule.PricePerHour*float64(slotMinutes)/60*100) / 100
			slot.Price = &price
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// collectOccupancy gathers blocks and active reservations intersecting
// the day, clipped to its bounds. The result is unsorted; callers merge.
func (s *AvailabilityService) collectOccupancy(courtID int64, dayStart, dayEnd time.Time) ([]schedule.Interval, error) {
	blocks, err := s.blocks.ListForCourtBetween(courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.ListActiveForCourtBetween(courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	occupied := make([]schedule.Interval, 0, len(blocks)+len(reservations))
	for _, b := range blocks {
		if iv, ok := schedule.Clip(schedule.Interval{Start: b.StartAt.In(s.loc), End: b.EndAt.In(s.loc)}, dayStart, dayEnd); ok {
			occupied = append(occupied, iv)
		}
	}
	for _, r := range reservations {
		if iv, ok := schedule.Clip(schedule.Interval{Start: r.StartAt.In(s.loc), End: r.EndAt.In(s.loc)}, dayStart, dayEnd); ok {
			occupied = append(occupied, iv)
		}
	}

	return occupied, nil
}
