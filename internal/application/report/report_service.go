package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/inventory"
	"github.com/mandibook/backend/internal/domain/ledger"
	"github.com/mandibook/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ReportService provides read-only views over the transaction history
type ReportService struct {
	txRepo      trade.TransactionRepository
	reconciler  *inventory.Reconciler
	accumulator *ledger.Accumulator
}

// NewReportService creates a new ReportService
func NewReportService(txRepo trade.TransactionRepository) *ReportService {
	return &ReportService{
		txRepo:      txRepo,
		reconciler:  inventory.NewReconciler(txRepo),
		accumulator: ledger.NewAccumulator(txRepo),
	}
}

// ===================== Pending Inventory =====================

// PendingLotResponse represents one buy lot with unsold stock
type PendingLotResponse struct {
	BuyID           uuid.UUID       `json:"buy_id"`
	PartyName       string          `json:"party_name"`
	ItemName        string          `json:"item_name"`
	RawPrice        decimal.Decimal `json:"raw_price"`
	BoughtQuantity  decimal.Decimal `json:"bought_quantity"`
	PendingQuantity decimal.Decimal `json:"pending_quantity"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// PendingInventoryResponse represents the pending stock report
type PendingInventoryResponse struct {
	Lots []PendingLotResponse `json:"lots"`
	// TotalPendingQuantity is the unsold stock across all lots.
	TotalPendingQuantity decimal.Decimal `json:"total_pending_quantity"`
	// InvestedTotal is the full buy cost of every lot that still holds
	// stock, the money currently tied up in inventory.
	InvestedTotal decimal.Decimal `json:"invested_total"`
}

// PendingInventory lists every buy lot with unsold stock, oldest first
func (s *ReportService) PendingInventory(ctx context.Context) (*PendingInventoryResponse, error) {
	response := &PendingInventoryResponse{
		Lots:                 []PendingLotResponse{},
		TotalPendingQuantity: decimal.Zero,
		InvestedTotal:        decimal.Zero,
	}

	for entry, err := range s.reconciler.ListPending(ctx) {
		if err != nil {
			return nil, err
		}
		response.Lots = append(response.Lots, PendingLotResponse{
			BuyID:           entry.BuyID,
			PartyName:       entry.PartyName,
			ItemName:        entry.ItemName,
			RawPrice:        entry.RawPrice,
			BoughtQuantity:  entry.BoughtQuantity,
			PendingQuantity: entry.PendingQuantity,
			TotalAmount:     entry.TotalAmount,
			OccurredAt:      entry.OccurredAt,
		})
		response.TotalPendingQuantity = response.TotalPendingQuantity.Add(entry.PendingQuantity)
		response.InvestedTotal = response.InvestedTotal.Add(entry.TotalAmount)
	}
	return response, nil
}

// ===================== Ledger =====================

// PartyBalanceResponse represents one party's ledger position
type PartyBalanceResponse struct {
	PartyName             string          `json:"party_name"`
	Owed                  decimal.Decimal `json:"owed"`
	Paid                  decimal.Decimal `json:"paid"`
	Outstanding           decimal.Decimal `json:"outstanding"`
	Receivable            decimal.Decimal `json:"receivable"`
	Received              decimal.Decimal `json:"received"`
	OutstandingReceivable decimal.Decimal `json:"outstanding_receivable"`
	TransactionCount      int             `json:"transaction_count"`
	Cleared               bool            `json:"cleared"`
}

// LedgerSummaryResponse represents the full ledger report
type LedgerSummaryResponse struct {
	Parties                    []PartyBalanceResponse `json:"parties"`
	TotalOutstanding           decimal.Decimal        `json:"total_outstanding"`
	TotalOutstandingReceivable decimal.Decimal        `json:"total_outstanding_receivable"`
}

// PartyLedgerResponse represents one party's balance with its history
type PartyLedgerResponse struct {
	Balance      PartyBalanceResponse `json:"balance"`
	Transactions []PartyLedgerEntry   `json:"transactions"`
}

// PartyLedgerEntry is one history line on a party's ledger page
type PartyLedgerEntry struct {
	ID         uuid.UUID       `json:"id"`
	Kind       string          `json:"kind"`
	ItemName   string          `json:"item_name"`
	BaseAmount decimal.Decimal `json:"base_amount"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// LedgerSummary computes every party's balance from the full history
func (s *ReportService) LedgerSummary(ctx context.Context) (*LedgerSummaryResponse, error) {
	balances, err := s.accumulator.AllBalances(ctx)
	if err != nil {
		return nil, err
	}

	response := &LedgerSummaryResponse{
		Parties:                    make([]PartyBalanceResponse, 0, len(balances)),
		TotalOutstanding:           decimal.Zero,
		TotalOutstandingReceivable: decimal.Zero,
	}
	for _, balance := range balances {
		response.Parties = append(response.Parties, toPartyBalanceResponse(balance))
		response.TotalOutstanding = response.TotalOutstanding.Add(balance.Outstanding())
		response.TotalOutstandingReceivable = response.TotalOutstandingReceivable.Add(balance.OutstandingReceivable())
	}
	return response, nil
}

// PartyLedger returns one party's balance plus the transactions behind it.
// A party with no history gets a zero balance and an empty list.
func (s *ReportService) PartyLedger(ctx context.Context, partyName string) (*PartyLedgerResponse, error) {
	balance, err := s.accumulator.BalanceFor(ctx, partyName)
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.FindByParty(ctx, partyName)
	if err != nil {
		return nil, err
	}

	entries := make([]PartyLedgerEntry, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		entries = append(entries, PartyLedgerEntry{
			ID:         tx.ID,
			Kind:       string(tx.Kind),
			ItemName:   tx.ItemName,
			BaseAmount: tx.BaseAmount,
			AmountPaid: tx.AmountPaid,
			OccurredAt: tx.OccurredAt,
		})
	}
	return &PartyLedgerResponse{
		Balance:      toPartyBalanceResponse(balance),
		Transactions: entries,
	}, nil
}

func toPartyBalanceResponse(balance ledger.Balance) PartyBalanceResponse {
	return PartyBalanceResponse{
		PartyName:             balance.PartyName,
		Owed:                  balance.Owed,
		Paid:                  balance.Paid,
		Outstanding:           balance.Outstanding(),
		Receivable:            balance.Receivable,
		Received:              balance.Received,
		OutstandingReceivable: balance.OutstandingReceivable(),
		TransactionCount:      balance.TransactionCount,
		Cleared:               balance.IsCleared(),
	}
}

// ===================== Dashboard =====================

// DashboardSummaryResponse represents the dashboard header figures
type DashboardSummaryResponse struct {
	TotalBuyAmount   decimal.Decimal `json:"total_buy_amount"`
	TotalSellAmount  decimal.Decimal `json:"total_sell_amount"`
	ProfitLoss       decimal.Decimal `json:"profit_loss"`
	TransactionCount int             `json:"transaction_count"`
	PendingLotCount  int             `json:"pending_lot_count"`
}

// DashboardSummary aggregates headline figures across the whole history.
// Profit is sell totals minus buy totals, so it only becomes meaningful
// once stock turns over.
func (s *ReportService) DashboardSummary(ctx context.Context) (*DashboardSummaryResponse, error) {
	txs, err := s.txRepo.FindAllByOccurrence(ctx)
	if err != nil {
		return nil, err
	}

	response := &DashboardSummaryResponse{
		TotalBuyAmount:  decimal.Zero,
		TotalSellAmount: decimal.Zero,
	}
	for i := range txs {
		tx := &txs[i]
		response.TransactionCount++
		if tx.IsBuy() {
			response.TotalBuyAmount = response.TotalBuyAmount.Add(tx.TotalAmount)
			continue
		}
		response.TotalSellAmount = response.TotalSellAmount.Add(tx.TotalAmount)
	}
	response.ProfitLoss = response.TotalSellAmount.Sub(response.TotalBuyAmount)

	for _, err := range s.reconciler.ListPending(ctx) {
		if err != nil {
			return nil, err
		}
		response.PendingLotCount++
	}
	return response, nil
}
