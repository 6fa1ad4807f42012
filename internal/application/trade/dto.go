package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// RecordBuyRequest represents a request to record a buy transaction
type RecordBuyRequest struct {
	PartyName  string          `json:"party_name" binding:"required,min=1,max=100"`
	ItemName   string          `json:"item_name" binding:"required,min=1,max=100"`
	RawPrice   decimal.Decimal `json:"raw_price"`
	Quantity   decimal.Decimal `json:"quantity"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Notes      string          `json:"notes" binding:"max=500"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

// RecordSellRequest represents a request to record a sell transaction
type RecordSellRequest struct {
	PartyName   string          `json:"party_name" binding:"required,min=1,max=100"`
	ItemName    string          `json:"item_name" binding:"required,min=1,max=100"`
	RawPrice    decimal.Decimal `json:"raw_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	LinkedBuyID *uuid.UUID      `json:"linked_buy_id"`
	Notes       string          `json:"notes" binding:"max=500"`
	OccurredAt  *time.Time      `json:"occurred_at"`
}

// UpdatePaymentRequest represents a request to update the paid amount
type UpdatePaymentRequest struct {
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// TransactionListFilter represents list query parameters
type TransactionListFilter struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir"`
	Kind      string `form:"kind"`
	PartyName string `form:"party_name"`
	ItemName  string `form:"item_name"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Kind            string          `json:"kind"`
	PartyName       string          `json:"party_name"`
	ItemName        string          `json:"item_name"`
	RawPrice        decimal.Decimal `json:"raw_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	BaseAmount      decimal.Decimal `json:"base_amount"`
	MandiCharge     decimal.Decimal `json:"mandi_charge"`
	Muddat          decimal.Decimal `json:"muddat"`
	TractorRent     decimal.Decimal `json:"tractor_rent"`
	CashDiscount    decimal.Decimal `json:"cash_discount"`
	LabourCharge    decimal.Decimal `json:"labour_charge"`
	TransportCharge decimal.Decimal `json:"transport_charge"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	OutstandingBase decimal.Decimal `json:"outstanding_base"`
	NegativeMargin  bool            `json:"negative_margin"`
	LinkedBuyID     *uuid.UUID      `json:"linked_buy_id,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(tx *trade.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		Kind:            string(tx.Kind),
		PartyName:       tx.PartyName,
		ItemName:        tx.ItemName,
		RawPrice:        tx.RawPrice,
		Quantity:        tx.Quantity,
		BaseAmount:      tx.BaseAmount,
		MandiCharge:     tx.MandiCharge,
		Muddat:          tx.Muddat,
		TractorRent:     tx.TractorRent,
		CashDiscount:    tx.CashDiscount,
		LabourCharge:    tx.LabourCharge,
		TransportCharge: tx.TransportCharge,
		TotalAmount:     tx.TotalAmount,
		AmountPaid:      tx.AmountPaid,
		OutstandingBase: tx.OutstandingBase(),
		NegativeMargin:  tx.NegativeMargin,
		LinkedBuyID:     tx.LinkedBuyID,
		Status:          string(tx.Status),
		Notes:           tx.Notes,
		OccurredAt:      tx.OccurredAt,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions
func ToTransactionResponses(txs []trade.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
