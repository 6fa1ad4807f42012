package ledger

import "github.com/shopspring/decimal"

// Balance is a party's money position derived from transaction history.
// All figures are base amounts: the trader's own charges (mandi, tractor,
// labour, transport) never enter a party's ledger.
type Balance struct {
	PartyName string `json:"party_name"`
	// Owed is the sum owed to the party for lots bought from them.
	Owed decimal.Decimal `json:"owed"`
	// Paid is the sum already paid out against Owed.
	Paid decimal.Decimal `json:"paid"`
	// Receivable is the sum the party owes for stock sold to them.
	Receivable decimal.Decimal `json:"receivable"`
	// Received is the sum already collected against Receivable.
	Received         decimal.Decimal `json:"received"`
	TransactionCount int             `json:"transaction_count"`
}

// ZeroBalance returns an empty balance for the given party
func ZeroBalance(partyName string) Balance {
	return Balance{
		PartyName:  partyName,
		Owed:       decimal.Zero,
		Paid:       decimal.Zero,
		Receivable: decimal.Zero,
		Received:   decimal.Zero,
	}
}

// Outstanding returns what is still owed to the party
func (b Balance) Outstanding() decimal.Decimal {
	return b.Owed.Sub(b.Paid)
}

// OutstandingReceivable returns what the party still owes
func (b Balance) OutstandingReceivable() decimal.Decimal {
	return b.Receivable.Sub(b.Received)
}

// IsCleared reports whether nothing remains outstanding on either side
func (b Balance) IsCleared() bool {
	return b.Outstanding().IsZero() && b.OutstandingReceivable().IsZero()
}
