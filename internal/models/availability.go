package models

import "time"

// Slot represents one bookable sub-interval of a court's free time
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
	// Price is the slot's price when a single pricing rule covers the
	// whole slot; nil otherwise.
	Price *float64 `json:"price"`
}

// QuoteSegment is one rule-priced portion of a quoted window
type QuoteSegment struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Minutes      int     `json:"minutes"`
	PricePerHour float64 `json:"price_per_hour"`
	Subtotal     float64 `json:"subtotal"`
}

// Quote is the priced breakdown for a proposed reservation window
type Quote struct {
	Net            float64        `json:"net"`
	Tax            float64        `json:"tax"`
	Total          float64        `json:"total"`
	Discount       float64        `json:"discount"`
	FinalTotal     float64        `json:"final_total"`
	PromotionLabel *string        `json:"promotion_label,omitempty"`
	Currency       string         `json:"currency"`
	Segments       []QuoteSegment `json:"segments"`
}

// QuoteRequest represents the request to price a single-day window
type QuoteRequest struct {
	CourtID   int64  `json:"court_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Validate validates the quote request
func (r *QuoteRequest) Validate() error {
	return validateDayWindow(r.Date, r.StartTime, r.EndTime)
}
