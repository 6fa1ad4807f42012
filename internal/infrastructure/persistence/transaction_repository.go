package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/mandibook/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements trade.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Save persists a new or updated transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *trade.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	var tx trade.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// FindAll finds transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Transaction{}), filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Transaction{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByKind finds transactions of one kind, honoring the filter
func (r *GormTransactionRepository) FindByKind(ctx context.Context, kind trade.TransactionKind, filter shared.Filter) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Transaction{}).
			Where("kind = ?", kind),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByParty finds all transactions recorded against a party name
func (r *GormTransactionRepository) FindByParty(ctx context.Context, partyName string) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	if err := r.db.WithContext(ctx).
		Where("party_name = ?", partyName).
		Order("occurred_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindBuysByOccurrence returns all buy transactions ordered by occurrence
// time ascending, oldest stock first
func (r *GormTransactionRepository) FindBuysByOccurrence(ctx context.Context) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	if err := r.db.WithContext(ctx).
		Where("kind = ?", trade.TransactionKindBuy).
		Order("occurred_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindAllByOccurrence returns the complete transaction history ordered by
// occurrence time ascending
func (r *GormTransactionRepository) FindAllByOccurrence(ctx context.Context) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	if err := r.db.WithContext(ctx).
		Order("occurred_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindSellsLinkedTo returns all sell transactions linked to a buy lot
func (r *GormTransactionRepository) FindSellsLinkedTo(ctx context.Context, buyID uuid.UUID) ([]trade.Transaction, error) {
	var txs []trade.Transaction
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND linked_buy_id = ?", trade.TransactionKindSell, buyID).
		Order("occurred_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// SumLinkedSellQuantity sums the quantity of all sells linked to a buy lot
func (r *GormTransactionRepository) SumLinkedSellQuantity(ctx context.Context, buyID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&trade.Transaction{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("kind = ? AND linked_buy_id = ?", trade.TransactionKindSell, buyID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Delete removes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// InTransaction runs fn against a repository bound to a single database
// transaction
func (r *GormTransactionRepository) InTransaction(ctx context.Context, fn func(repo trade.TransactionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormTransactionRepository{db: tx})
	})
}

// applyFilter applies filter options including pagination and ordering
func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, "occurred_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("party_name LIKE ? OR item_name LIKE ? OR notes LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "party_name":
			query = query.Where("party_name = ?", value)
		case "item_name":
			query = query.Where("item_name = ?", value)
		case "linked_buy_id":
			query = query.Where("linked_buy_id = ?", value)
		case "negative_margin":
			query = query.Where("negative_margin = ?", value)
		case "occurred_after":
			query = query.Where("occurred_at >= ?", value)
		case "occurred_before":
			query = query.Where("occurred_at <= ?", value)
		}
	}

	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ trade.TransactionRepository = (*GormTransactionRepository)(nil)
