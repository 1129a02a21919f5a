package models

import (
	"errors"
	"time"
)

// Weekday is the three-letter weekday key used by operating hours and pricing rules
type Weekday string

const (
	WeekdayMonday    Weekday = "mon"
	WeekdayTuesday   Weekday = "tue"
	WeekdayWednesday Weekday = "wed"
	WeekdayThursday  Weekday = "thu"
	WeekdayFriday    Weekday = "fri"
	WeekdaySaturday  Weekday = "sat"
	WeekdaySunday    Weekday = "sun"
)

var weekdayByTime = map[time.Weekday]Weekday{
	time.Monday:    WeekdayMonday,
	time.Tuesday:   WeekdayTuesday,
	time.Wednesday: WeekdayWednesday,
	time.Thursday:  WeekdayThursday,
	time.Friday:    WeekdayFriday,
	time.Saturday:  WeekdaySaturday,
	time.Sunday:    WeekdaySunday,
}

// WeekdayOf returns the weekday key for an instant
func WeekdayOf(t time.Time) Weekday {
	return weekdayByTime[t.Weekday()]
}

// IsValid reports whether w is one of the seven weekday keys
func (w Weekday) IsValid() bool {
	switch w {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	}
	return false
}

// OperatingHours represents an open window for a weekday. A row with
// CourtID = nil applies to every court of the complex unless a
// court-specific row exists for the same weekday.
type OperatingHours struct {
	ID        int64     `json:"id" db:"id"`
	ComplexID int64     `json:"complex_id" db:"complex_id"`
	CourtID   *int64    `json:"court_id,omitempty" db:"court_id"`
	Weekday   Weekday   `json:"weekday" db:"weekday"`
	OpenTime  string    `json:"open_time" db:"open_time"`
	CloseTime string    `json:"close_time" db:"close_time"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateOperatingHoursRequest represents the request to create an open window
type CreateOperatingHoursRequest struct {
	ComplexID int64   `json:"complex_id" binding:"required"`
	CourtID   *int64  `json:"court_id,omitempty"`
	Weekday   Weekday `json:"weekday" binding:"required"`
	OpenTime  string  `json:"open_time" binding:"required"`
	CloseTime string  `json:"close_time" binding:"required"`
}

// UpdateOperatingHoursRequest represents a partial update of an open window
type UpdateOperatingHoursRequest struct {
	Weekday   *Weekday `json:"weekday,omitempty"`
	OpenTime  *string  `json:"open_time,omitempty"`
	CloseTime *string  `json:"close_time,omitempty"`
}

// Validate validates the create operating hours request
func (r *CreateOperatingHoursRequest) Validate() error {
	if !r.Weekday.IsValid() {
		return NewValidationError("weekday must be one of mon..sun")
	}

	open, err := ParseClock(r.OpenTime)
	if err != nil {
		return NewValidationError("open_time must be HH:MM")
	}

	close, err := ParseClock(r.CloseTime)
	if err != nil {
		return NewValidationError("close_time must be HH:MM")
	}

	if close <= open {
		return NewValidationError("open_time must be before close_time")
	}

	return nil
}

// Validate validates the update request against the existing row
func (r *UpdateOperatingHoursRequest) Validate(existing *OperatingHours) error {
	if r.Weekday == nil && r.OpenTime == nil && r.CloseTime == nil {
		return NewValidationError("no fields to update")
	}

	if r.Weekday != nil && !r.Weekday.IsValid() {
		return NewValidationError("weekday must be one of mon..sun")
	}

	openStr := existing.OpenTime
	if r.OpenTime != nil {
		openStr = *r.OpenTime
	}
	closeStr := existing.CloseTime
	if r.CloseTime != nil {
		closeStr = *r.CloseTime
	}

	open, err := ParseClock(openStr)
	if err != nil {
		return NewValidationError("open_time must be HH:MM")
	}
	close, err := ParseClock(closeStr)
	if err != nil {
		return NewValidationError("close_time must be HH:MM")
	}
	if close <= open {
		return NewValidationError("open_time must be before close_time")
	}

	return nil
}

// ParseClock parses a wall-clock "HH:MM" value into minutes after midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errors.New("invalid clock value")
	}
	return t.Hour()*60 + t.Minute(), nil
}
