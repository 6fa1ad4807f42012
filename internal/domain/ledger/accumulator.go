package ledger

import (
	"context"
	"sort"

	"github.com/mandibook/backend/internal/domain/trade"
)

// Accumulator folds transaction history into per-party balances.
//
// Balances are never stored. They are recomputed from the full history on
// every call, so deleting or correcting a transaction is automatically
// reflected without a separate adjustment entry.
type Accumulator struct {
	txRepo trade.TransactionRepository
}

// NewAccumulator creates a new Accumulator
func NewAccumulator(txRepo trade.TransactionRepository) *Accumulator {
	return &Accumulator{txRepo: txRepo}
}

// BalanceFor computes the balance for a single party. A party with no
// recorded transactions gets a zero balance, not an error.
func (a *Accumulator) BalanceFor(ctx context.Context, partyName string) (Balance, error) {
	txs, err := a.txRepo.FindByParty(ctx, partyName)
	if err != nil {
		return Balance{}, err
	}

	balance := ZeroBalance(partyName)
	for i := range txs {
		balance.accumulate(&txs[i])
	}
	return balance, nil
}

// AllBalances computes one balance per party across the whole history,
// sorted by party name for stable report output.
func (a *Accumulator) AllBalances(ctx context.Context) ([]Balance, error) {
	txs, err := a.txRepo.FindAllByOccurrence(ctx)
	if err != nil {
		return nil, err
	}

	byParty := make(map[string]*Balance)
	for i := range txs {
		tx := &txs[i]
		balance, ok := byParty[tx.PartyName]
		if !ok {
			zero := ZeroBalance(tx.PartyName)
			balance = &zero
			byParty[tx.PartyName] = balance
		}
		balance.accumulate(tx)
	}

	balances := make([]Balance, 0, len(byParty))
	for _, balance := range byParty {
		balances = append(balances, *balance)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].PartyName < balances[j].PartyName
	})
	return balances, nil
}

// accumulate applies one transaction. Buys add to the payable side,
// sells to the receivable side; only base amounts move the ledger.
func (b *Balance) accumulate(tx *trade.Transaction) {
	b.TransactionCount++
	if tx.IsBuy() {
		b.Owed = b.Owed.Add(tx.BaseAmount)
		b.Paid = b.Paid.Add(tx.AmountPaid)
		return
	}
	b.Receivable = b.Receivable.Add(tx.BaseAmount)
	b.Received = b.Received.Add(tx.AmountPaid)
}
