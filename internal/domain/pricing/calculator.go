package pricing

import (
	"github.com/mandibook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BuyBreakdown is the itemized result of a buy-side price calculation.
// Total = BaseAmount + MandiCharge + Muddat + TractorRent.
type BuyBreakdown struct {
	BaseAmount  decimal.Decimal `json:"base_amount"`
	MandiCharge decimal.Decimal `json:"mandi_charge"`
	Muddat      decimal.Decimal `json:"muddat"`
	TractorRent decimal.Decimal `json:"tractor_rent"`
	Total       decimal.Decimal `json:"total"`
}

// SellBreakdown is the itemized result of a sell-side price calculation.
// Total = GrossAmount - CashDiscount - LabourCharge - TransportCharge.
// NegativeMargin is set when the deductions exceed the gross revenue; the
// negative total is returned as-is so the caller can surface the loss
// instead of hiding it.
type SellBreakdown struct {
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	CashDiscount    decimal.Decimal `json:"cash_discount"`
	LabourCharge    decimal.Decimal `json:"labour_charge"`
	TransportCharge decimal.Decimal `json:"transport_charge"`
	Total           decimal.Decimal `json:"total"`
	NegativeMargin  bool            `json:"negative_margin"`
}

// validateInputs rejects negative price or quantity before any arithmetic
func validateInputs(rawPrice, quantity decimal.Decimal) error {
	if rawPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Raw price cannot be negative")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	return nil
}

// ComputeBuyTotal derives the total buying cost for a lot: the base amount
// plus mandi charge, muddat and tractor rent. rawPrice is the per-unit price
// and quantity the lot size; rates are read from the snapshot at call time,
// never from stored state.
func ComputeBuyTotal(rawPrice, quantity decimal.Decimal, rates RateConfig) (BuyBreakdown, error) {
	if err := validateInputs(rawPrice, quantity); err != nil {
		return BuyBreakdown{}, err
	}

	base := rawPrice.Mul(quantity)
	// a lot with no price or no quantity carries no buy-side charges
	if base.IsZero() {
		return BuyBreakdown{
			BaseAmount:  decimal.Zero,
			MandiCharge: decimal.Zero,
			Muddat:      decimal.Zero,
			TractorRent: decimal.Zero,
			Total:       decimal.Zero,
		}, nil
	}
	mandi := rates.MandiChargeRate.Mul(base)
	muddat := rates.MuddatRate.Mul(base)
	chargeUnits := quantity.Div(rates.effectiveScale())
	tractor := rates.TractorRentPerUnit.Mul(chargeUnits)

	return BuyBreakdown{
		BaseAmount:  base,
		MandiCharge: mandi,
		Muddat:      muddat,
		TractorRent: tractor,
		Total:       base.Add(mandi).Add(muddat).Add(tractor),
	}, nil
}

// ComputeSellTotal derives the net selling revenue for a lot: the gross
// amount minus cash discount, labour charge and transport charge. A result
// below zero is not clamped; it is flagged via NegativeMargin.
func ComputeSellTotal(rawPrice, quantity decimal.Decimal, rates RateConfig) (SellBreakdown, error) {
	if err := validateInputs(rawPrice, quantity); err != nil {
		return SellBreakdown{}, err
	}

	gross := rawPrice.Mul(quantity)
	discount := rates.CashDiscountRate.Mul(gross)
	chargeUnits := quantity.Div(rates.effectiveScale())
	labour := rates.LabourChargePerUnit.Mul(chargeUnits)
	transport := rates.TransportChargePerUnit.Mul(chargeUnits)
	total := gross.Sub(discount).Sub(labour).Sub(transport)

	return SellBreakdown{
		GrossAmount:     gross,
		CashDiscount:    discount,
		LabourCharge:    labour,
		TransportCharge: transport,
		Total:           total,
		NegativeMargin:  total.IsNegative(),
	}, nil
}
