package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/services"
)

// ReservationHandler serves the reservation lifecycle endpoints
type ReservationHandler struct {
	reservations *services.ReservationService
	loc          *time.Location
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *services.ReservationService, loc *time.Location) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, loc: loc}
}

// CreateReservation handles POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservation, quote, err := h.reservations.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reservation": reservation,
		"quote":       quote,
	})
}

// GetMyReservations handles GET /api/v1/reservations/mine
func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	actor := middleware.MustGetUserContext(c)
	reservations, err := h.reservations.ListMine(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// ListReservations handles GET /api/v1/reservations (owner/admin)
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservations, err := h.reservations.List(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// GetReservation handles GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservation, err := h.reservations.Get(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// RescheduleReservation handles PATCH /api/v1/reservations/:id
func (h *ReservationHandler) RescheduleReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.RescheduleReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservation, err := h.reservations.Reschedule(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ConfirmReservation handles POST /api/v1/reservations/:id/confirm
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservation, err := h.reservations.Confirm(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actor := middleware.MustGetUserContext(c)
	reservation, err := h.reservations.Cancel(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) parseFilter(c *gin.Context) (models.ReservationFilter, error) {
	var filter models.ReservationFilter

	if raw := c.Query("status"); raw != "" {
		status := models.ReservationStatus(raw)
		switch status {
		case models.ReservationStatusPending, models.ReservationStatusConfirmed,
			models.ReservationStatusCancelled, models.ReservationStatusExpired:
			filter.Status = &status
		default:
			return filter, models.NewValidationError("unknown status " + raw)
		}
	}

	if raw := c.Query("court_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, models.NewValidationError("court_id must be a positive integer")
		}
		filter.CourtID = &id
	}

	if raw := c.Query("complex_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return filter, models.NewValidationError("complex_id must be a positive integer")
		}
		filter.ComplexIDs = []int64{id}
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			return filter, models.NewValidationError("from must be YYYY-MM-DD")
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			return filter, models.NewValidationError("to must be YYYY-MM-DD")
		}
		// inclusive end date
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	return filter, nil
}
