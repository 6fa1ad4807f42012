package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	// Save persists a new or updated transaction
	Save(ctx context.Context, tx *Transaction) error
	// FindByID finds a transaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// FindAll finds transactions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)
	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindByKind finds transactions of one kind, honoring the filter
	FindByKind(ctx context.Context, kind TransactionKind, filter shared.Filter) ([]Transaction, error)
	// FindByParty finds all transactions recorded against a party name
	FindByParty(ctx context.Context, partyName string) ([]Transaction, error)
	// FindBuysByOccurrence returns all buy transactions ordered by
	// occurrence time ascending (oldest stock first)
	FindBuysByOccurrence(ctx context.Context) ([]Transaction, error)
	// FindAllByOccurrence returns the complete transaction history ordered
	// by occurrence time ascending
	FindAllByOccurrence(ctx context.Context) ([]Transaction, error)
	// FindSellsLinkedTo returns all sell transactions linked to a buy lot
	FindSellsLinkedTo(ctx context.Context, buyID uuid.UUID) ([]Transaction, error)
	// SumLinkedSellQuantity sums the quantity of all sells linked to a buy lot
	SumLinkedSellQuantity(ctx context.Context, buyID uuid.UUID) (decimal.Decimal, error)
	// Delete removes a transaction
	Delete(ctx context.Context, id uuid.UUID) error
	// InTransaction runs fn against a repository bound to a single database
	// transaction. The reconciliation check-then-allocate sequence must run
	// inside one such scope so concurrent sells cannot over-allocate a lot.
	InTransaction(ctx context.Context, fn func(repo TransactionRepository) error) error
}
