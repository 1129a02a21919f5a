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

// PricingAdminHandler serves pricing-rule and promotion management
type PricingAdminHandler struct {
	rules  *database.PricingRuleRepository
	promos *database.PromotionRepository
	authz  *services.Authorizer
}

// NewPricingAdminHandler creates a new pricing admin handler
func NewPricingAdminHandler(rules *database.PricingRuleRepository, promos *database.PromotionRepository,
	authz *services.Authorizer) *PricingAdminHandler {
	return &PricingAdminHandler{
		rules:  rules,
		promos: promos,
		authz:  authz,
	}
}

// CreatePricingRule handles POST /api/v1/pricing-rules
func (h *PricingAdminHandler) CreatePricingRule(c *gin.Context) {
	var req models.CreatePricingRuleRequest
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

	rule := &models.PricingRule{
		CourtID:      req.CourtID,
		Weekday:      req.Weekday,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		PricePerHour: req.PricePerHour,
		ValidFrom:    parseDatePtr(req.ValidFrom),
		ValidTo:      parseDatePtr(req.ValidTo),
	}

	if err := h.rules.Create(rule); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// DeletePricingRule handles DELETE /api/v1/pricing-rules/:id
func (h *PricingAdminHandler) DeletePricingRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.rules.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if err := h.authz.CanManageCourt(actor, existing.CourtID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.rules.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreatePromotion handles POST /api/v1/promotions
func (h *PricingAdminHandler) CreatePromotion(c *gin.Context) {
	var req models.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if req.CourtID != nil {
		if err := h.authz.CanManageCourt(actor, *req.CourtID); err != nil {
			respondError(c, err)
			return
		}
	} else {
		if err := h.authz.CanManageComplex(actor, *req.ComplexID); err != nil {
			respondError(c, err)
			return
		}
	}

	promo := &models.Promotion{
		CourtID:   req.CourtID,
		ComplexID: req.ComplexID,
		Label:     req.Label,
		Kind:      req.Kind,
		Value:     req.Value,
		ValidFrom: parseDatePtr(req.ValidFrom),
		ValidTo:   parseDatePtr(req.ValidTo),
		Active:    true,
	}

	if err := h.promos.Create(promo); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, promo)
}

// DeletePromotion handles DELETE /api/v1/promotions/:id
func (h *PricingAdminHandler) DeletePromotion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.promos.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustGetUserContext(c)
	if existing.CourtID != nil {
		err = h.authz.CanManageCourt(actor, *existing.CourtID)
	} else {
		err = h.authz.CanManageComplex(actor, *existing.ComplexID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.promos.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseDatePtr parses an optional YYYY-MM-DD value. Validation has
// already rejected malformed input.
func parseDatePtr(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil
	}
	return &t
}
