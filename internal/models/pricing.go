package models

import "time"

// PricingRule represents a day-and-time-scoped hourly rate for a court.
// A nil Weekday means the rule applies every day; nil validity bounds are
// unbounded on that side.
type PricingRule struct {
	ID           int64      `json:"id" db:"id"`
	CourtID      int64      `json:"court_id" db:"court_id"`
	Weekday      *Weekday   `json:"weekday,omitempty" db:"weekday"`
	StartTime    string     `json:"start_time" db:"start_time"`
	EndTime      string     `json:"end_time" db:"end_time"`
	PricePerHour float64    `json:"price_per_hour" db:"price_per_hour"`
	ValidFrom    *time.Time `json:"valid_from,omitempty" db:"valid_from"`
	ValidTo      *time.Time `json:"valid_to,omitempty" db:"valid_to"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// PromotionKind represents how a promotion's value is applied
type PromotionKind string

const (
	PromotionKindPercentage PromotionKind = "percentage"
	PromotionKindFixed      PromotionKind = "fixed"
)

// Promotion represents a discount scoped to one court or one complex.
// Exactly one of CourtID / ComplexID is set.
type Promotion struct {
	ID        int64         `json:"id" db:"id"`
	CourtID   *int64        `json:"court_id,omitempty" db:"court_id"`
	ComplexID *int64        `json:"complex_id,omitempty" db:"complex_id"`
	Label     string        `json:"label" db:"label"`
	Kind      PromotionKind `json:"kind" db:"kind"`
	Value     float64       `json:"value" db:"value"`
	ValidFrom *time.Time    `json:"valid_from,omitempty" db:"valid_from"`
	ValidTo   *time.Time    `json:"valid_to,omitempty" db:"valid_to"`
	Active    bool          `json:"active" db:"active"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// ValidOn reports whether the promotion applies on the given date.
// Validity bounds are inclusive calendar dates, so the instant's
// time-of-day and zone are discarded before comparing.
func (p *Promotion) ValidOn(date time.Time) bool {
	if !p.Active {
		return false
	}
	day := calendarDay(date)
	if p.ValidFrom != nil && day.Before(calendarDay(*p.ValidFrom)) {
		return false
	}
	if p.ValidTo != nil && day.After(calendarDay(*p.ValidTo)) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreatePricingRuleRequest represents the request to create a pricing rule
type CreatePricingRuleRequest struct {
	CourtID      int64    `json:"court_id" binding:"required"`
	Weekday      *Weekday `json:"weekday,omitempty"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	PricePerHour float64  `json:"price_per_hour" binding:"required"`
	ValidFrom    *string  `json:"valid_from,omitempty"`
	ValidTo      *string  `json:"valid_to,omitempty"`
}

// CreatePromotionRequest represents the request to create a promotion
type CreatePromotionRequest struct {
	CourtID   *int64        `json:"court_id,omitempty"`
	ComplexID *int64        `json:"complex_id,omitempty"`
	Label     string        `json:"label" binding:"required"`
	Kind      PromotionKind `json:"kind" binding:"required"`
	Value     float64       `json:"value" binding:"required"`
	ValidFrom *string       `json:"valid_from,omitempty"`
	ValidTo   *string       `json:"valid_to,omitempty"`
}

// Validate validates the create pricing rule request
func (r *CreatePricingRuleRequest) Validate() error {
	if r.Weekday != nil && !r.Weekday.IsValid() {
		return NewValidationError("weekday must be one of mon..sun")
	}

	start, err := ParseClock(r.StartTime)
	if err != nil {
		return NewValidationError("start_time must be HH:MM")
	}

	end, err := ParseClock(r.EndTime)
	if err != nil {
		return NewValidationError("end_time must be HH:MM")
	}

	if end <= start {
		return NewValidationError("start_time must be before end_time")
	}

	if r.PricePerHour <= 0 {
		return NewValidationError("price_per_hour must be positive")
	}

	if err := validateDateBounds(r.ValidFrom, r.ValidTo); err != nil {
		return err
	}

	return nil
}

// Validate validates the create promotion request
func (r *CreatePromotionRequest) Validate() error {
	if (r.CourtID == nil) == (r.ComplexID == nil) {
		return NewValidationError("exactly one of court_id or complex_id is required")
	}

	switch r.Kind {
	case PromotionKindPercentage:
		if r.Value <= 0 || r.Value > 100 {
			return NewValidationError("percentage value must be in (0, 100]")
		}
	case PromotionKindFixed:
		if r.Value <= 0 {
			return NewValidationError("fixed value must be positive")
		}
	default:
		return NewValidationError("kind must be percentage or fixed")
	}

	if err := validateDateBounds(r.ValidFrom, r.ValidTo); err != nil {
		return err
	}

	return nil
}

func validateDateBounds(from, to *string) error {
	var fromDate, toDate time.Time
	var err error

	if from != nil {
		if fromDate, err = time.Parse("2006-01-02", *from); err != nil {
			return NewValidationError("valid_from must be YYYY-MM-DD")
		}
	}
	if to != nil {
		if toDate, err = time.Parse("2006-01-02", *to); err != nil {
			return NewValidationError("valid_to must be YYYY-MM-DD")
		}
	}
	if from != nil && to != nil && toDate.Before(fromDate) {
		return NewValidationError("valid_to must not precede valid_from")
	}

	return nil
}
