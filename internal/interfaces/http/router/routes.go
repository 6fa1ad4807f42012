package router

import (
	"github.com/mandibook/backend/internal/interfaces/http/handler"
)

// TradeRoutes builds the transaction recording route group
func TradeRoutes(h *handler.TransactionHandler) *DomainGroup {
	return NewDomainGroup("trade", "/trade").
		POST("/transactions/buy", h.RecordBuy).
		POST("/transactions/sell", h.RecordSell).
		GET("/transactions", h.List).
		GET("/transactions/:id", h.GetByID).
		PUT("/transactions/:id/payment", h.UpdatePayment).
		DELETE("/transactions/:id", h.Delete)
}

// ReportRoutes builds the report route group
func ReportRoutes(h *handler.ReportHandler) *DomainGroup {
	return NewDomainGroup("reports", "/reports").
		GET("/pending-inventory", h.PendingInventory).
		GET("/ledger", h.LedgerSummary).
		GET("/ledger/:party", h.PartyLedger).
		GET("/dashboard", h.Dashboard)
}

// RatesRoutes builds the rate card route group
func RatesRoutes(h *handler.RatesHandler) *DomainGroup {
	return NewDomainGroup("rates", "/rates").
		GET("", h.Current)
}

// SystemRoutes builds the system route group
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", h.Ping).
		GET("/info", h.GetSystemInfo)
}
