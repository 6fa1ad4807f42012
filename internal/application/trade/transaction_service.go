package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/inventory"
	"github.com/mandibook/backend/internal/domain/pricing"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/mandibook/backend/internal/domain/trade"
)

// TransactionService handles buy and sell recording operations
type TransactionService struct {
	txRepo trade.TransactionRepository
	rates  pricing.RateConfig
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(txRepo trade.TransactionRepository, rates pricing.RateConfig) *TransactionService {
	return &TransactionService{
		txRepo: txRepo,
		rates:  rates,
	}
}

// RecordBuying prices and persists a new buy lot
func (s *TransactionService) RecordBuying(ctx context.Context, req RecordBuyRequest) (*TransactionResponse, error) {
	breakdown, err := pricing.ComputeBuyTotal(req.RawPrice, req.Quantity, s.rates)
	if err != nil {
		return nil, err
	}

	tx, err := trade.NewBuyTransaction(req.PartyName, req.ItemName, req.RawPrice, req.Quantity, breakdown, req.AmountPaid, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.OccurredAt != nil {
		tx.OccurredAt = *req.OccurredAt
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// RecordSelling prices and persists a new sell. When linked to a buy lot the
// availability check, the sell insert and the lot status flip run in one
// database transaction, so two concurrent sells cannot both claim the same
// pending stock.
func (s *TransactionService) RecordSelling(ctx context.Context, req RecordSellRequest) (*TransactionResponse, error) {
	breakdown, err := pricing.ComputeSellTotal(req.RawPrice, req.Quantity, s.rates)
	if err != nil {
		return nil, err
	}

	tx, err := trade.NewSellTransaction(req.PartyName, req.ItemName, req.RawPrice, req.Quantity, breakdown, req.AmountPaid, req.LinkedBuyID, req.Notes)
	if err != nil {
		return nil, err
	}
	if req.OccurredAt != nil {
		tx.OccurredAt = *req.OccurredAt
	}

	if req.LinkedBuyID == nil {
		if err := s.txRepo.Save(ctx, tx); err != nil {
			return nil, err
		}
		response := ToTransactionResponse(tx)
		return &response, nil
	}

	err = s.txRepo.InTransaction(ctx, func(txnRepo trade.TransactionRepository) error {
		reconciler := inventory.NewReconciler(txnRepo)
		alloc, err := reconciler.AllocateSell(ctx, *req.LinkedBuyID, req.Quantity)
		if err != nil {
			return err
		}

		if err := txnRepo.Save(ctx, tx); err != nil {
			return err
		}

		if alloc.Remaining.IsZero() {
			buy, err := txnRepo.FindByID(ctx, *req.LinkedBuyID)
			if err != nil {
				return err
			}
			if err := buy.MarkSold(); err != nil {
				return err
			}
			return txnRepo.Save(ctx, buy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTransactionResponse(tx)
	return &response, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// List retrieves transactions with filtering and pagination
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) (shared.Paginated[TransactionResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "occurred_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Kind != "" {
		kind := trade.TransactionKind(filter.Kind)
		if !kind.IsValid() {
			return shared.Paginated[TransactionResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown transaction kind")
		}
		domainFilter.Filters["kind"] = string(kind)
	}
	if filter.PartyName != "" {
		domainFilter.Filters["party_name"] = filter.PartyName
	}
	if filter.ItemName != "" {
		domainFilter.Filters["item_name"] = filter.ItemName
	}

	txs, err := s.txRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}
	total, err := s.txRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[TransactionResponse]{}, err
	}

	return shared.NewPaginated(ToTransactionResponses(txs), total, filter.Page, filter.PageSize), nil
}

// UpdatePayment sets the paid amount on a transaction
func (s *TransactionService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.RecordPayment(req.AmountPaid); err != nil {
		return nil, err
	}
	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// Delete removes a transaction. A buy lot with linked sells cannot be
// deleted; the sells must be deleted first so the inventory history stays
// consistent.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if tx.IsBuy() {
		sells, err := s.txRepo.FindSellsLinkedTo(ctx, id)
		if err != nil {
			return err
		}
		if len(sells) > 0 {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a buy lot that has linked sells")
		}
	}

	return s.txRepo.Delete(ctx, id)
}
