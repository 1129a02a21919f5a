package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/services"
)

// AvailabilityHandler serves free-slot listings
type AvailabilityHandler struct {
	availability       *services.AvailabilityService
	defaultSlotMinutes int
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availability *services.AvailabilityService, defaultSlotMinutes int) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability:       availability,
		defaultSlotMinutes: defaultSlotMinutes,
	}
}

// GetAvailability handles GET /api/v1/availability
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	courtID, err := strconv.ParseInt(c.Query("court_id"), 10, 64)
	if err != nil || courtID <= 0 {
		respondError(c, models.NewValidationError("court_id must be a positive integer"))
		return
	}

	date, err := h.availability.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	slotMinutes := h.defaultSlotMinutes
	if raw := c.Query("slot_minutes"); raw != "" {
		slotMinutes, err = strconv.Atoi(raw)
		if err != nil || slotMinutes <= 0 {
			respondError(c, models.NewValidationError("slot_minutes must be a positive integer"))
			return
		}
	}

	if rawTo := c.Query("date_to"); rawTo != "" {
		dateTo, err := h.availability.ParseDate(rawTo)
		if err != nil {
			respondError(c, err)
			return
		}

		days, err := h.availability.RangeSlots(courtID, date, dateTo, slotMinutes)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"court_id":     courtID,
			"slot_minutes": slotMinutes,
			"days":         days,
		})
		return
	}

	slots, err := h.availability.DaySlots(courtID, date, slotMinutes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"court_id":     courtID,
		"date":         date.Format("2006-01-02"),
		"slot_minutes": slotMinutes,
		"slots":        slots,
	})
}
