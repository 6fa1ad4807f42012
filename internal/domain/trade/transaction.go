package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mandibook/backend/internal/domain/pricing"
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes buy-side from sell-side transactions
type TransactionKind string

const (
	TransactionKindBuy  TransactionKind = "BUY"
	TransactionKindSell TransactionKind = "SELL"
)

// IsValid checks if the kind is a valid TransactionKind
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindBuy || k == TransactionKindSell
}

// String returns the string representation of TransactionKind
func (k TransactionKind) String() string {
	return string(k)
}

// TransactionStatus represents the lifecycle state of a transaction.
// Buy lots start PENDING and become SOLD once their quantity is fully
// allocated to sells. Sell transactions are recorded COMPLETED.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSold      TransactionStatus = "SOLD"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusSold, TransactionStatusCompleted:
		return true
	}
	return false
}

// Validation limits for transaction fields
var (
	MaxQuantity = decimal.NewFromInt(10000)     // quintals
	MaxRawPrice = decimal.NewFromInt(1000000)   // per unit
	MaxAmount   = decimal.NewFromInt(100000000) // any single monetary field
)

const (
	maxNameLength  = 100
	maxNotesLength = 500
)

// Transaction is the aggregate root for a recorded buy or sell.
// All monetary columns are frozen at creation time; a later rate change
// never recomputes persisted totals.
type Transaction struct {
	shared.BaseEntity
	Kind            TransactionKind   `gorm:"type:varchar(10);not null;index"`
	PartyName       string            `gorm:"type:varchar(100);not null;index"`
	ItemName        string            `gorm:"type:varchar(100);not null;index"`
	RawPrice        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Quantity        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	BaseAmount      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	MandiCharge     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Muddat          decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	TractorRent     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	CashDiscount    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	LabourCharge    decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	TransportCharge decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	TotalAmount     decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	AmountPaid      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	NegativeMargin  bool              `gorm:"not null;default:false"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;index"`
	LinkedBuyID     *uuid.UUID        `gorm:"type:uuid;index"`
	Notes           string            `gorm:"type:varchar(500)"`
	OccurredAt      time.Time         `gorm:"not null;index"`
}

var _ shared.Entity = (*Transaction)(nil)

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewBuyTransaction creates a buy transaction from a priced breakdown.
// The breakdown must come from pricing.ComputeBuyTotal with the rates
// in effect at recording time.
func NewBuyTransaction(partyName, itemName string, rawPrice, quantity decimal.Decimal, breakdown pricing.BuyBreakdown, amountPaid decimal.Decimal, notes string) (*Transaction, error) {
	partyName, err := validateName(partyName, "Party name")
	if err != nil {
		return nil, err
	}
	itemName, err = validateName(itemName, "Item name")
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(rawPrice, quantity, amountPaid, breakdown.BaseAmount, notes); err != nil {
		return nil, err
	}

	base := shared.NewBaseEntity()
	return &Transaction{
		BaseEntity:      base,
		Kind:            TransactionKindBuy,
		PartyName:       partyName,
		ItemName:        itemName,
		RawPrice:        rawPrice,
		Quantity:        quantity,
		BaseAmount:      breakdown.BaseAmount,
		MandiCharge:     breakdown.MandiCharge,
		Muddat:          breakdown.Muddat,
		TractorRent:     breakdown.TractorRent,
		CashDiscount:    decimal.Zero,
		LabourCharge:    decimal.Zero,
		TransportCharge: decimal.Zero,
		TotalAmount:     breakdown.Total,
		AmountPaid:      amountPaid,
		Status:          TransactionStatusPending,
		Notes:           notes,
		OccurredAt:      base.CreatedAt,
	}, nil
}

// NewSellTransaction creates a sell transaction from a priced breakdown.
// linkedBuyID may be nil for an unlinked sale; the caller is responsible
// for allocating against the linked lot before persisting.
func NewSellTransaction(partyName, itemName string, rawPrice, quantity decimal.Decimal, breakdown pricing.SellBreakdown, amountPaid decimal.Decimal, linkedBuyID *uuid.UUID, notes string) (*Transaction, error) {
	partyName, err := validateName(partyName, "Party name")
	if err != nil {
		return nil, err
	}
	itemName, err = validateName(itemName, "Item name")
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(rawPrice, quantity, amountPaid, breakdown.GrossAmount, notes); err != nil {
		return nil, err
	}

	base := shared.NewBaseEntity()
	return &Transaction{
		BaseEntity:      base,
		Kind:            TransactionKindSell,
		PartyName:       partyName,
		ItemName:        itemName,
		RawPrice:        rawPrice,
		Quantity:        quantity,
		BaseAmount:      breakdown.GrossAmount,
		MandiCharge:     decimal.Zero,
		Muddat:          decimal.Zero,
		TractorRent:     decimal.Zero,
		CashDiscount:    breakdown.CashDiscount,
		LabourCharge:    breakdown.LabourCharge,
		TransportCharge: breakdown.TransportCharge,
		TotalAmount:     breakdown.Total,
		AmountPaid:      amountPaid,
		NegativeMargin:  breakdown.NegativeMargin,
		Status:          TransactionStatusCompleted,
		LinkedBuyID:     linkedBuyID,
		Notes:           notes,
		OccurredAt:      base.CreatedAt,
	}, nil
}

// IsBuy returns true for buy-side transactions
func (t *Transaction) IsBuy() bool {
	return t.Kind == TransactionKindBuy
}

// IsSell returns true for sell-side transactions
func (t *Transaction) IsSell() bool {
	return t.Kind == TransactionKindSell
}

// RecordPayment replaces the paid amount. The ledger tracks base amounts,
// so a payment can never exceed the base amount of the transaction.
func (t *Transaction) RecordPayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount cannot be negative")
	}
	if amount.GreaterThan(t.BaseAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Payment amount cannot exceed the base amount")
	}
	t.AmountPaid = amount
	t.UpdatedAt = time.Now()
	return nil
}

// MarkSold flips a pending buy lot to SOLD once fully allocated
func (t *Transaction) MarkSold() error {
	if !t.IsBuy() {
		return shared.NewDomainError("INVALID_STATE", "Only buy transactions can be marked sold")
	}
	if t.Status != TransactionStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending buy transactions can be marked sold")
	}
	t.Status = TransactionStatusSold
	t.UpdatedAt = time.Now()
	return nil
}

// OutstandingBase returns the unpaid part of the base amount
func (t *Transaction) OutstandingBase() decimal.Decimal {
	return t.BaseAmount.Sub(t.AmountPaid)
}

// validateName normalizes whitespace and enforces length and character rules
func validateName(value, field string) (string, error) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return "", shared.NewDomainError("INVALID_INPUT", field+" cannot be empty")
	}
	if len(value) > maxNameLength {
		return "", shared.NewDomainError("INVALID_INPUT", field+" exceeds maximum length")
	}
	if strings.ContainsAny(value, "<>") {
		return "", shared.NewDomainError("INVALID_INPUT", field+" contains invalid characters")
	}
	return value, nil
}

func validateAmounts(rawPrice, quantity, amountPaid, baseAmount decimal.Decimal, notes string) error {
	if rawPrice.IsNegative() || rawPrice.GreaterThan(MaxRawPrice) {
		return shared.NewDomainError("INVALID_INPUT", "Raw price is out of range")
	}
	if quantity.IsNegative() || quantity.GreaterThan(MaxQuantity) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity is out of range")
	}
	if amountPaid.IsNegative() || amountPaid.GreaterThan(MaxAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Paid amount is out of range")
	}
	if amountPaid.GreaterThan(baseAmount) {
		return shared.NewDomainError("INVALID_INPUT", "Paid amount cannot exceed the base amount")
	}
	if len(notes) > maxNotesLength {
		return shared.NewDomainError("INVALID_INPUT", "Notes exceed maximum length")
	}
	return nil
}
