package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporthub/court-booking-backend/internal/models"
	"github.com/sporthub/court-booking-backend/internal/services"
)

// QuoteHandler serves price quotes for reservation windows
type QuoteHandler struct {
	quotes *services.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// CreateQuote handles POST /api/v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quote, err := h.quotes.Quote(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
