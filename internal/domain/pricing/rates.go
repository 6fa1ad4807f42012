package pricing

import (
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RateConfig is an immutable snapshot of the charge rates applied to buy and
// sell transactions. It is loaded once at process start and passed explicitly
// to every calculation; calculations never read rates from global state.
//
// Percentage rates apply to the base amount (raw price x quantity).
// Per-unit charges apply per charge unit of quantity; UnitScale converts the
// recorded quantity unit to the charge unit (1 when charges are quoted per
// quintal and quantities are recorded in quintals).
type RateConfig struct {
	MandiChargeRate        decimal.Decimal `json:"mandi_charge_rate"`
	MuddatRate             decimal.Decimal `json:"muddat_rate"`
	CashDiscountRate       decimal.Decimal `json:"cash_discount_rate"`
	TractorRentPerUnit     decimal.Decimal `json:"tractor_rent_per_unit"`
	LabourChargePerUnit    decimal.Decimal `json:"labour_charge_per_unit"`
	TransportChargePerUnit decimal.Decimal `json:"transport_charge_per_unit"`
	UnitScale              decimal.Decimal `json:"unit_scale"`
}

// NewRateConfig creates a RateConfig after validating every rate.
// All rates must be non-negative and UnitScale must be positive.
func NewRateConfig(mandi, muddat, cashDiscount, tractorRent, labourCharge, transportCharge, unitScale decimal.Decimal) (RateConfig, error) {
	for _, rate := range []decimal.Decimal{mandi, muddat, cashDiscount, tractorRent, labourCharge, transportCharge} {
		if rate.IsNegative() {
			return RateConfig{}, shared.NewDomainError("INVALID_INPUT", "Rates cannot be negative")
		}
	}
	if !unitScale.IsPositive() {
		return RateConfig{}, shared.NewDomainError("INVALID_INPUT", "Unit scale must be positive")
	}
	return RateConfig{
		MandiChargeRate:        mandi,
		MuddatRate:             muddat,
		CashDiscountRate:       cashDiscount,
		TractorRentPerUnit:     tractorRent,
		LabourChargePerUnit:    labourCharge,
		TransportChargePerUnit: transportCharge,
		UnitScale:              unitScale,
	}, nil
}

// DefaultRates returns the rates the business has historically operated with:
// 1.5% mandi charge, 1.5% muddat, 4% cash discount, and per-quintal tractor
// rent / labour / transport charges.
func DefaultRates() RateConfig {
	return RateConfig{
		MandiChargeRate:        decimal.NewFromFloat(0.015),
		MuddatRate:             decimal.NewFromFloat(0.015),
		CashDiscountRate:       decimal.NewFromFloat(0.04),
		TractorRentPerUnit:     decimal.NewFromInt(15),
		LabourChargePerUnit:    decimal.NewFromInt(60),
		TransportChargePerUnit: decimal.NewFromInt(280),
		UnitScale:              decimal.NewFromInt(1),
	}
}

// effectiveScale guards the per-unit charge division: a zero scale would
// divide by zero, so an unset scale falls back to the quintal basis.
func (r RateConfig) effectiveScale() decimal.Decimal {
	if !r.UnitScale.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return r.UnitScale
}
