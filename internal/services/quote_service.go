package services

import (
	"fmt"
	"time"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/pricing"
	"github.com/sporthub/court-booking-backend/internal/schedule"
)

// QuoteService prices single-day reservation windows
type QuoteService struct {
	courts CourtStore
	rules  PricingRuleStore
	promos PromotionStore
	calc   *pricing.Calculator
	loc    *time.Location
}

// NewQuoteService creates a new quote service
func NewQuoteService(courts CourtStore, rules PricingRuleStore, promos PromotionStore,
	calc *pricing.Calculator, loc *time.Location) *QuoteService {
	return &QuoteService{
		courts: courts,
		rules:  rules,
		promos: promos,
		calc:   calc,
		loc:    loc,
	}
}

// Quote prices the requested window. Returns
// models.ErrNoPricingCoverage when part of the window has no rule.
func (s *QuoteService) Quote(req *models.QuoteRequest) (*models.Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	court, err := s.courts.GetByID(req.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.Active {
		return nil, fmt.Errorf("court %d is inactive: %w", court.ID, models.ErrNotFound)
	}

	window, err := s.Window(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	rules, err := s.rules.ListForCourt(court.ID)
	if err != nil {
		return nil, err
	}

	promos, err := s.promos.ListCandidates(court.ID, court.ComplexID)
	if err != nil {
		return nil, err
	}

	return s.calc.Quote(rules, promos, window)
}

// Window materialises a date + clock pair as a concrete local interval
func (s *QuoteService) Window(date, startTime, endTime string) (schedule.Interval, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return schedule.Interval{}, models.NewValidationError("date must be YYYY-MM-DD")
	}

	start, err := models.ParseClock(startTime)
	if err != nil {
		return schedule.Interval{}, models.NewValidationError("start_time must be HH:MM")
	}
	end, err := models.ParseClock(endTime)
	if err != nil {
		return schedule.Interval{}, models.NewValidationError("end_time must be HH:MM")
	}
	if end <= start {
		return schedule.Interval{}, models.NewValidationError("start_time must be before end_time")
	}

	midnight, _ := schedule.DayBounds(day, s.loc)
	return schedule.Interval{
		Start: midnight.Add(time.Duration(start) * time.Minute),
		End:   midnight.Add(time.Duration(end) * time.Minute),
	}, nil
}
