package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/pricing"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/mandibook/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository is a mock implementation of trade.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *trade.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindByKind(ctx context.Context, kind trade.TransactionKind, filter shared.Filter) ([]trade.Transaction, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByParty(ctx context.Context, partyName string) ([]trade.Transaction, error) {
	args := m.Called(ctx, partyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindBuysByOccurrence(ctx context.Context) ([]trade.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllByOccurrence(ctx context.Context) ([]trade.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindSellsLinkedTo(ctx context.Context, buyID uuid.UUID) ([]trade.Transaction, error) {
	args := m.Called(ctx, buyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumLinkedSellQuantity(ctx context.Context, buyID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, buyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) InTransaction(ctx context.Context, fn func(repo trade.TransactionRepository) error) error {
	args := m.Called(ctx, mock.Anything)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

// marketRates matches the rate card used throughout the dashboard examples:
// 1.5% mandi charge, 15/unit tractor rent, 4% cash discount, 60/unit labour,
// 280/unit transport, no muddat.
func marketRates(t *testing.T) pricing.RateConfig {
	t.Helper()
	rates, err := pricing.NewRateConfig(
		decimal.NewFromFloat(0.015),
		decimal.Zero,
		decimal.NewFromFloat(0.04),
		decimal.NewFromInt(15),
		decimal.NewFromInt(60),
		decimal.NewFromInt(280),
		decimal.NewFromInt(1),
	)
	require.NoError(t, err)
	return rates
}

func storedBuyLot(t *testing.T, rates pricing.RateConfig, quantity int64) *trade.Transaction {
	t.Helper()
	breakdown, err := pricing.ComputeBuyTotal(decimal.NewFromInt(1000), decimal.NewFromInt(quantity), rates)
	require.NoError(t, err)
	buy, err := trade.NewBuyTransaction("Ram Traders", "Wheat", decimal.NewFromInt(1000), decimal.NewFromInt(quantity), breakdown, decimal.Zero, "")
	require.NoError(t, err)
	return buy
}

func TestTransactionService_RecordBuying(t *testing.T) {
	ctx := context.Background()

	t.Run("prices and persists a buy lot", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		service := NewTransactionService(repo, marketRates(t))
		resp, err := service.RecordBuying(ctx, RecordBuyRequest{
			PartyName:  "Ram Traders",
			ItemName:   "Wheat",
			RawPrice:   decimal.NewFromInt(1000),
			Quantity:   decimal.NewFromInt(100),
			AmountPaid: decimal.NewFromInt(50000),
		})
		require.NoError(t, err)

		assert.Equal(t, "BUY", resp.Kind)
		assert.Equal(t, "PENDING", resp.Status)
		assert.True(t, resp.BaseAmount.Equal(decimal.NewFromInt(100000)))
		assert.True(t, resp.MandiCharge.Equal(decimal.NewFromInt(1500)))
		assert.True(t, resp.TractorRent.Equal(decimal.NewFromInt(1500)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(103000)), "total %s", resp.TotalAmount)
		assert.True(t, resp.OutstandingBase.Equal(decimal.NewFromInt(50000)))
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid input before touching the store", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		service := NewTransactionService(repo, marketRates(t))

		_, err := service.RecordBuying(ctx, RecordBuyRequest{
			PartyName: "Ram Traders",
			ItemName:  "Wheat",
			RawPrice:  decimal.NewFromInt(-10),
			Quantity:  decimal.NewFromInt(100),
		})
		assertDomainCode(t, err, "INVALID_INPUT")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_RecordSelling(t *testing.T) {
	ctx := context.Background()

	t.Run("persists an unlinked sell without a transaction scope", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		service := NewTransactionService(repo, marketRates(t))
		resp, err := service.RecordSelling(ctx, RecordSellRequest{
			PartyName: "Shyam & Sons",
			ItemName:  "Wheat",
			RawPrice:  decimal.NewFromInt(1000),
			Quantity:  decimal.NewFromInt(100),
		})
		require.NoError(t, err)

		assert.Equal(t, "SELL", resp.Kind)
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(62000)), "total %s", resp.TotalAmount)
		assert.False(t, resp.NegativeMargin)
		repo.AssertNotCalled(t, "InTransaction", mock.Anything, mock.Anything)
	})

	t.Run("allocates a linked sell against pending stock", func(t *testing.T) {
		rates := marketRates(t)
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("SumLinkedSellQuantity", ctx, buy.ID).Return(decimal.NewFromInt(30), nil)
		repo.On("Save", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		service := NewTransactionService(repo, rates)
		resp, err := service.RecordSelling(ctx, RecordSellRequest{
			PartyName:   "Shyam & Sons",
			ItemName:    "Wheat",
			RawPrice:    decimal.NewFromInt(1200),
			Quantity:    decimal.NewFromInt(50),
			LinkedBuyID: &buy.ID,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.LinkedBuyID)
		assert.Equal(t, buy.ID, *resp.LinkedBuyID)
		assert.Equal(t, trade.TransactionStatusPending, buy.Status, "partially sold lot stays pending")
		repo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("flips the lot to sold on exact exhaustion", func(t *testing.T) {
		rates := marketRates(t)
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("SumLinkedSellQuantity", ctx, buy.ID).Return(decimal.NewFromInt(30), nil)
		repo.On("Save", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		service := NewTransactionService(repo, rates)
		_, err := service.RecordSelling(ctx, RecordSellRequest{
			PartyName:   "Shyam & Sons",
			ItemName:    "Wheat",
			RawPrice:    decimal.NewFromInt(1200),
			Quantity:    decimal.NewFromInt(70),
			LinkedBuyID: &buy.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, trade.TransactionStatusSold, buy.Status)
		repo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("rejects a sell exceeding pending stock", func(t *testing.T) {
		rates := marketRates(t)
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("InTransaction", ctx, mock.Anything).Return(nil)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("SumLinkedSellQuantity", ctx, buy.ID).Return(decimal.NewFromInt(80), nil)

		service := NewTransactionService(repo, rates)
		_, err := service.RecordSelling(ctx, RecordSellRequest{
			PartyName:   "Shyam & Sons",
			ItemName:    "Wheat",
			RawPrice:    decimal.NewFromInt(1200),
			Quantity:    decimal.NewFromInt(30),
			LinkedBuyID: &buy.ID,
		})
		assertDomainCode(t, err, "INSUFFICIENT_INVENTORY")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("records a loss-making sell flagged as negative margin", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*trade.Transaction")).Return(nil)

		// Gross 500 against 4% discount + 60 labour + 280 transport for one
		// quintal leaves 140, but 10 quintals of cheap stock go under.
		service := NewTransactionService(repo, marketRates(t))
		resp, err := service.RecordSelling(ctx, RecordSellRequest{
			PartyName: "Shyam & Sons",
			ItemName:  "Wheat",
			RawPrice:  decimal.NewFromInt(300),
			Quantity:  decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.True(t, resp.NegativeMargin)
		assert.True(t, resp.TotalAmount.IsNegative())
	})
}

func TestTransactionService_UpdatePayment(t *testing.T) {
	ctx := context.Background()
	rates := marketRates(t)

	t.Run("records a payment within the base amount", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("Save", ctx, buy).Return(nil)

		service := NewTransactionService(repo, rates)
		resp, err := service.UpdatePayment(ctx, buy.ID, UpdatePaymentRequest{AmountPaid: decimal.NewFromInt(100000)})
		require.NoError(t, err)
		assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(100000)))
		assert.True(t, resp.OutstandingBase.IsZero())
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)

		service := NewTransactionService(repo, rates)
		_, err := service.UpdatePayment(ctx, buy.ID, UpdatePaymentRequest{AmountPaid: decimal.NewFromInt(100001)})
		assertDomainCode(t, err, "INVALID_INPUT")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_List(t *testing.T) {
	ctx := context.Background()
	rates := marketRates(t)

	t.Run("applies defaults and filters", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		expected := shared.Filter{
			Page:     1,
			PageSize: 20,
			OrderBy:  "occurred_at",
			OrderDir: "desc",
			Filters:  map[string]interface{}{"kind": "BUY", "party_name": "Ram Traders"},
		}
		repo.On("FindAll", ctx, expected).Return([]trade.Transaction{*buy}, nil)
		repo.On("Count", ctx, expected).Return(int64(1), nil)

		service := NewTransactionService(repo, rates)
		result, err := service.List(ctx, TransactionListFilter{Kind: "BUY", PartyName: "Ram Traders"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)
		assert.Equal(t, buy.ID, result.Items[0].ID)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
		assert.Equal(t, 1, result.TotalPages)
	})

	t.Run("rejects an unknown kind", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		service := NewTransactionService(repo, rates)

		_, err := service.List(ctx, TransactionListFilter{Kind: "LEASE"})
		assertDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestTransactionService_Delete(t *testing.T) {
	ctx := context.Background()
	rates := marketRates(t)

	t.Run("deletes a buy lot without linked sells", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("FindSellsLinkedTo", ctx, buy.ID).Return([]trade.Transaction{}, nil)
		repo.On("Delete", ctx, buy.ID).Return(nil)

		service := NewTransactionService(repo, rates)
		require.NoError(t, service.Delete(ctx, buy.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses to delete a buy lot with linked sells", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		buy := storedBuyLot(t, rates, 100)
		breakdown, err := pricing.ComputeSellTotal(decimal.NewFromInt(1200), decimal.NewFromInt(20), rates)
		require.NoError(t, err)
		sell, err := trade.NewSellTransaction("Shyam & Sons", "Wheat", decimal.NewFromInt(1200), decimal.NewFromInt(20), breakdown, decimal.Zero, &buy.ID, "")
		require.NoError(t, err)

		repo.On("FindByID", ctx, buy.ID).Return(buy, nil)
		repo.On("FindSellsLinkedTo", ctx, buy.ID).Return([]trade.Transaction{*sell}, nil)

		service := NewTransactionService(repo, rates)
		err = service.Delete(ctx, buy.ID)
		assertDomainCode(t, err, "INVALID_STATE")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		missing := uuid.New()
		repo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		service := NewTransactionService(repo, rates)
		assert.ErrorIs(t, service.Delete(ctx, missing), shared.ErrNotFound)
	})
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}
