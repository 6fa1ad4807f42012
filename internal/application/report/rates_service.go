package report

import "github.com/mandibook/backend/internal/domain/pricing"

// RatesService exposes the rate card in effect for new transactions.
// Rates are fixed at startup; already persisted totals never change.
type RatesService struct {
	rates pricing.RateConfig
}

// NewRatesService creates a new RatesService
func NewRatesService(rates pricing.RateConfig) *RatesService {
	return &RatesService{rates: rates}
}

// Current returns the active rate configuration
func (s *RatesService) Current() pricing.RateConfig {
	return s.rates
}
