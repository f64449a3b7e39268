package ledger

import "sort"

// Balance is one counterparty position from a subject's point of view:
// positive means the counterparty owes the subject, negative means the
// subject owes the counterparty.
type Balance struct {
	CounterpartyID string
	Amount         Money
}

// NetBalanceAll reduces an edge set to each user's total net position in a
// single signed pass: every edge credits its creditor and debits its debtor.
// For any closed edge set the returned totals sum to zero.
func NetBalanceAll(edges []Edge) map[string]Money {
	totals := make(map[string]Money)
	for _, e := range edges {
		totals[e.CreditorID] += e.Amount
		totals[e.DebtorID] -= e.Amount
	}
	return totals
}

// NetBalance reduces an edge set to the subject's per-counterparty
// positions, netting both directions, sorted ascending by amount (largest
// debt first). Counterparties that net to zero are omitted.
func NetBalance(edges []Edge, subjectID string) []Balance {
	per := make(map[string]Money)
	for _, e := range edges {
		switch subjectID {
		case e.CreditorID:
			per[e.DebtorID] += e.Amount
		case e.DebtorID:
			per[e.CreditorID] -= e.Amount
		}
	}

	balances := make([]Balance, 0, len(per))
	for id, amount := range per {
		if amount == 0 {
			continue
		}
		balances = append(balances, Balance{CounterpartyID: id, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Amount != balances[j].Amount {
			return balances[i].Amount < balances[j].Amount
		}
		return balances[i].CounterpartyID < balances[j].CounterpartyID
	})
	return balances
}
