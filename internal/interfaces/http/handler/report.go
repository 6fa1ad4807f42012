package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/mandibook/backend/internal/application/report"
)

// ReportHandler handles inventory and ledger report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// PendingInventory returns buy lots with unsold quantity, oldest first
func (h *ReportHandler) PendingInventory(c *gin.Context) {
	report, err := h.reportService.PendingInventory(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// LedgerSummary returns per-party balances with outstanding totals
func (h *ReportHandler) LedgerSummary(c *gin.Context) {
	report, err := h.reportService.LedgerSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// PartyLedger returns a single party's balance and transaction history
func (h *ReportHandler) PartyLedger(c *gin.Context) {
	partyName := c.Param("party")
	if partyName == "" {
		h.BadRequest(c, "Party name is required")
		return
	}

	report, err := h.reportService.PartyLedger(c.Request.Context(), partyName)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}

// Dashboard returns aggregate buy/sell totals and profit figures
func (h *ReportHandler) Dashboard(c *gin.Context) {
	report, err := h.reportService.DashboardSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
