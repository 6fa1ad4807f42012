package inventory

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/mandibook/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PendingEntry describes the unsold remainder of one buy lot. It is derived
// from the transaction history on every query and never stored.
type PendingEntry struct {
	BuyID           uuid.UUID       `json:"buy_id"`
	PartyName       string          `json:"party_name"`
	ItemName        string          `json:"item_name"`
	RawPrice        decimal.Decimal `json:"raw_price"`
	BoughtQuantity  decimal.Decimal `json:"bought_quantity"`
	PendingQuantity decimal.Decimal `json:"pending_quantity"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// Allocation is the token returned by a successful sell allocation. It is
// attached to the new sell transaction by the caller.
type Allocation struct {
	BuyID     uuid.UUID       `json:"buy_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Reconciler matches sell transactions against prior buy lots. It holds no
// state of its own; every answer is recomputed from the repository so that
// corrections to history are always reflected.
type Reconciler struct {
	txRepo trade.TransactionRepository
}

// NewReconciler creates a new Reconciler
func NewReconciler(txRepo trade.TransactionRepository) *Reconciler {
	return &Reconciler{txRepo: txRepo}
}

// PendingQuantity computes the unsold remainder of a buy lot: the bought
// quantity minus the sum of all linked sell quantities. A negative remainder
// means the stored history is inconsistent; it is surfaced as
// OVER_ALLOCATED_INVENTORY rather than clamped to zero.
func (r *Reconciler) PendingQuantity(ctx context.Context, buyID uuid.UUID) (decimal.Decimal, error) {
	buy, err := r.txRepo.FindByID(ctx, buyID)
	if err != nil {
		return decimal.Zero, err
	}
	if !buy.IsBuy() {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Transaction is not a buy lot")
	}

	sold, err := r.txRepo.SumLinkedSellQuantity(ctx, buyID)
	if err != nil {
		return decimal.Zero, err
	}

	pending := buy.Quantity.Sub(sold)
	if pending.IsNegative() {
		return decimal.Zero, shared.NewDomainError("OVER_ALLOCATED_INVENTORY",
			fmt.Sprintf("Buy lot %s has %s quintals sold against %s bought", buyID, sold, buy.Quantity))
	}
	return pending, nil
}

// AllocateSell validates that a sell of the given quantity fits within the
// pending remainder of the buy lot and returns an allocation token. When the
// lot cannot cover the request the error carries the actual available
// quantity so the caller can offer a partial fill.
//
// The read-check-allocate sequence is not atomic by itself; callers that may
// face concurrent writers must run it inside TransactionRepository.InTransaction.
func (r *Reconciler) AllocateSell(ctx context.Context, buyID uuid.UUID, quantity decimal.Decimal) (*Allocation, error) {
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Allocation quantity cannot be negative")
	}

	pending, err := r.PendingQuantity(ctx, buyID)
	if err != nil {
		return nil, err
	}
	if quantity.GreaterThan(pending) {
		return nil, shared.NewDomainError("INSUFFICIENT_INVENTORY",
			fmt.Sprintf("Requested %s quintals but only %s pending", quantity, pending))
	}

	return &Allocation{
		BuyID:     buyID,
		Quantity:  quantity,
		Remaining: pending.Sub(quantity),
	}, nil
}

// ListPending lazily yields one PendingEntry per buy lot with a positive
// unsold remainder, ordered by occurrence time ascending so the oldest stock
// is reported first. Iteration stops at the first yield returning false.
func (r *Reconciler) ListPending(ctx context.Context) iter.Seq2[PendingEntry, error] {
	return func(yield func(PendingEntry, error) bool) {
		buys, err := r.txRepo.FindBuysByOccurrence(ctx)
		if err != nil {
			yield(PendingEntry{}, err)
			return
		}

		for _, buy := range buys {
			sold, err := r.txRepo.SumLinkedSellQuantity(ctx, buy.ID)
			if err != nil {
				yield(PendingEntry{}, err)
				return
			}

			pending := buy.Quantity.Sub(sold)
			if pending.IsNegative() {
				yield(PendingEntry{}, shared.NewDomainError("OVER_ALLOCATED_INVENTORY",
					fmt.Sprintf("Buy lot %s has %s quintals sold against %s bought", buy.ID, sold, buy.Quantity)))
				return
			}
			if pending.IsZero() {
				continue
			}

			entry := PendingEntry{
				BuyID:           buy.ID,
				PartyName:       buy.PartyName,
				ItemName:        buy.ItemName,
				RawPrice:        buy.RawPrice,
				BoughtQuantity:  buy.Quantity,
				PendingQuantity: pending,
				TotalAmount:     buy.TotalAmount,
				OccurredAt:      buy.OccurredAt,
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}
