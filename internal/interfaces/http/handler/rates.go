package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/mandibook/backend/internal/application/report"
)

// RatesHandler exposes the active pricing rate card
type RatesHandler struct {
	BaseHandler
	ratesService *reportapp.RatesService
}

// NewRatesHandler creates a new RatesHandler
func NewRatesHandler(ratesService *reportapp.RatesService) *RatesHandler {
	return &RatesHandler{
		ratesService: ratesService,
	}
}

// Current returns the rate card used for new transactions. Stored totals
// are frozen at recording time and do not change with the rate card.
func (h *RatesHandler) Current(c *gin.Context) {
	h.Success(c, h.ratesService.Current())
}
