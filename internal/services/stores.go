// Package services orchestrates the availability, quote and reservation
// operations on top of the repositories and the pure schedule/pricing
// packages.
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/sporthub/court-booking-backend/internal/models"
)

// CourtStore provides court and complex lookups
type CourtStore interface {
	GetByID(id int64) (*models.Court, error)
	GetComplexByID(id int64) (*models.Complex, error)
	ListComplexIDsForOwner(ownerID uuid.UUID) ([]int64, error)
}

// HoursStore provides operating-window lookups
type HoursStore interface {
	FindForCourt(courtID int64, weekday models.Weekday) (*models.OperatingHours, error)
	FindForComplex(complexID int64, weekday models.Weekday) (*models.OperatingHours, error)
}

// BlockStore provides closure lookups
type BlockStore interface {
	ListForCourtBetween(courtID int64, from, to time.Time) ([]models.Block, error)
}

// PricingRuleStore provides hourly-rate rule lookups
type PricingRuleStore interface {
	ListForCourt(courtID int64) ([]models.PricingRule, error)
}

// PromotionStore provides discount promotion lookups
type PromotionStore interface {
	ListCandidates(courtID, complexID int64) ([]models.Promotion, error)
}

// ReservationStore provides reservation persistence, including the
// overlap-guarded writes
type ReservationStore interface {
	GetByID(id int64) (*models.Reservation, error)
	ListActiveForCourtBetween(courtID int64, from, to time.Time) ([]models.Reservation, error)
	ListForUser(userID uuid.UUID) ([]models.Reservation, error)
	List(filter models.ReservationFilter) ([]models.Reservation, error)
	Create(res *models.Reservation) error
	UpdateWindow(id int64, startAt, endAt time.Time, totalPrice float64) error
	UpdateStatus(id int64, status models.ReservationStatus, cancelledAt *time.Time) error
}
