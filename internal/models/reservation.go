package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"

	// ReservationStatusExpired is reserved for a future timeout sweep.
	// No transition produces it today.
	ReservationStatusExpired ReservationStatus = "expired"
)

// Reservation represents a booked window on a court
type Reservation struct {
	ID          int64             `json:"id" db:"id"`
	Reference   uuid.UUID         `json:"reference" db:"reference"`
	CourtID     int64             `json:"court_id" db:"court_id"`
	UserID      uuid.UUID         `json:"user_id" db:"user_id"`
	StartAt     time.Time         `json:"start_at" db:"start_at"`
	EndAt       time.Time         `json:"end_at" db:"end_at"`
	Status      ReservationStatus `json:"status" db:"status"`
	TotalPrice  float64           `json:"total_price" db:"total_price"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt   time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether the reservation still occupies its window
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// CanBeConfirmed reports whether the reservation may transition to confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == ReservationStatusPending
}

// CanBeCancelled reports whether the reservation may transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.IsActive()
}

// CreateReservationRequest represents the request to book a court window
type CreateReservationRequest struct {
	CourtID   int64  `json:"court_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// RescheduleReservationRequest represents the request to move a reservation
type RescheduleReservationRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// ReservationFilter narrows admin/owner reservation listings. A
// non-empty ComplexIDs restricts results to those complexes; owners get
// it pinned to the complexes they own.
type ReservationFilter struct {
	Status     *ReservationStatus
	CourtID    *int64
	ComplexIDs []int64
	From       *time.Time
	To         *time.Time
}

// Validate validates the create reservation request
func (r *CreateReservationRequest) Validate() error {
	return validateDayWindow(r.Date, r.StartTime, r.EndTime)
}

// Validate validates the reschedule request
func (r *RescheduleReservationRequest) Validate() error {
	return validateDayWindow(r.Date, r.StartTime, r.EndTime)
}

func validateDayWindow(date, startTime, endTime string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return NewValidationError("date must be YYYY-MM-DD")
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return NewValidationError("start_time must be HH:MM")
	}

	end, err := ParseClock(endTime)
	if err != nil {
		return NewValidationError("end_time must be HH:MM")
	}

	if end <= start {
		return NewValidationError("start_time must be before end_time")
	}

	return nil
}
