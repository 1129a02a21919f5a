package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/court-booking-backend/internal/database"
	"github.com/sporthub/court-booking-backend/internal/middleware"
	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/services"
)

// ScheduleAdminHandler serves the operating-hours and block management
// endpoints used by facility owners and admins.
type ScheduleAdminHandler struct {
	hours  *database.OperatingHoursRepository
	blocks *database.BlockRepository
	courts services.CourtStore
	authz  *services.Authorizer
	loc    *time.Location
}

// NewScheduleAdminHandler creates a new schedule admin handler
func NewScheduleAdminHandler(hours *database.OperatingHoursRepository, blocks *database.BlockRepository,
	courts services.CourtStore, authz *services.Authorizer, loc *time.Location) *ScheduleAdminHandler {
	return &ScheduleAdminHandler{
		hours:  hours,
		blocks: blocks,
		courts: courts,
		authz:  authz,
		loc:    loc,
	}
}

// CreateOperatingHours handles POST /api/v1/operating-hours
func (h *ScheduleAdminHandler) CreateOperatingHours(c *gin.Context) {
	var req models.CreateOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageComplex(actor, req.ComplexID); err != nil {
		respondError(c, err)
		return
	}

	if req.CourtID != nil {
		court, err := h.courts.GetByID(*req.CourtID)
		if err != nil {
			respondError(c, err)
			return
		}
		if court.ComplexID != req.ComplexID {
			respondError(c, models.NewValidationError("court does not belong to the complex"))
			return
		}
	}

	hours := &models.OperatingHours{
		ComplexID: req.ComplexID,
		CourtID:   req.CourtID,
		Weekday:   req.Weekday,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
	}

	if err := h.hours.Create(hours); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hours)
}

// UpdateOperatingHours handles PATCH /api/v1/operating-hours/:id
func (h *ScheduleAdminHandler) UpdateOperatingHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateOperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	existing, err := h.hours.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageComplex(actor, existing.ComplexID); err != nil {
		respondError(c, err)
		return
	}

	if err := req.Validate(existing); err != nil {
		respondError(c, err)
		return
	}

	if err := h.hours.Update(id, &req); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.hours.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteOperatingHours handles DELETE /api/v1/operating-hours/:id
func (h *ScheduleAdminHandler) DeleteOperatingHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.hours.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageComplex(actor, existing.ComplexID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.hours.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateBlock handles POST /api/v1/blocks
func (h *ScheduleAdminHandler) CreateBlock(c *gin.Context) {
	var req models.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageCourt(actor, req.CourtID); err != nil {
		respondError(c, err)
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, h.loc)
	if err != nil {
		respondError(c, models.NewValidationError("date must be YYYY-MM-DD"))
		return
	}

	start, _ := models.ParseClock(req.StartTime)
	end, _ := models.ParseClock(req.EndTime)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.loc)

	block := &models.Block{
		CourtID: req.CourtID,
		StartAt: midnight.Add(time.Duration(start) * time.Minute),
		EndAt:   midnight.Add(time.Duration(end) * time.Minute),
		Reason:  req.Reason,
	}

	if err := h.blocks.Create(block); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

// DeleteBlock handles DELETE /api/v1/blocks/:id
func (h *ScheduleAdminHandler) DeleteBlock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.blocks.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageCourt(actor, existing.CourtID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.blocks.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
