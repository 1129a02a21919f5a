package models

import "time"

// Block represents an administrator-defined closure window for a court
type Block struct {
	ID        int64     `json:"id" db:"id"`
	CourtID   int64     `json:"court_id" db:"court_id"`
	StartAt   time.Time `json:"start_at" db:"start_at"`
	EndAt     time.Time `json:"end_at" db:"end_at"`
	Reason    *string   `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBlockRequest represents the request to close a court for a window
type CreateBlockRequest struct {
	CourtID   int64   `json:"court_id" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Reason    *string `json:"reason,omitempty"`
}

// Validate validates the create block request
func (r *CreateBlockRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return NewValidationError("date must be YYYY-MM-DD")
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

	return nil
}
