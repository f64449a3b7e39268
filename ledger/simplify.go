package ledger

import (
	"container/heap"
	"fmt"
	"sort"
)

// Transfer is one suggested settlement payment: FromID pays ToID Amount.
type Transfer struct {
	FromID string
	ToID   string
	Amount Money
}

// account is a user with an outstanding amount. seq fixes the tie-break
// order so the output is deterministic.
type account struct {
	userID string
	amount Money
	seq    int
}

// borrowerHeap is a max-heap on debt size, ties broken by seq.
type borrowerHeap []account

func (h borrowerHeap) Len() int { return len(h) }

func (h borrowerHeap) Less(i, j int) bool {
	if h[i].amount != h[j].amount {
		return h[i].amount > h[j].amount
	}
	return h[i].seq < h[j].seq
}

func (h borrowerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *borrowerHeap) Push(x any) { *h = append(*h, x.(account)) }

func (h *borrowerHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Simplify collapses a set of net positions into a short list of
// point-to-point transfers that zero every balance. Greedy: each lender, in
// descending order of credit, is paid off by the largest remaining debtors
// first. The result is not guaranteed globally minimal (that problem is
// NP-hard) but never needs more transfers than non-zero positions minus one
// for a connected population.
//
// If total credit and total debt disagree the input is inconsistent and
// Simplify fails with ErrUnbalancedLedger instead of dropping the
// discrepancy.
func Simplify(totals map[string]Money) ([]Transfer, error) {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var lenders []account
	borrowers := &borrowerHeap{}
	for i, id := range ids {
		switch amount := totals[id]; {
		case amount > 0:
			lenders = append(lenders, account{userID: id, amount: amount, seq: i})
		case amount < 0:
			*borrowers = append(*borrowers, account{userID: id, amount: -amount, seq: i})
		}
	}
	heap.Init(borrowers)
	sort.SliceStable(lenders, func(i, j int) bool {
		return lenders[i].amount > lenders[j].amount
	})

	var transfers []Transfer
	var leftoverCredit Money
	for _, lender := range lenders {
		credit := lender.amount
		for credit > 0 && borrowers.Len() > 0 {
			b := heap.Pop(borrowers).(account)

			// Correct netting never yields a user on both sides, but
			// guard anyway: skip to the next borrower and restore the
			// skipped one unchanged.
			if b.userID == lender.userID {
				if borrowers.Len() == 0 {
					heap.Push(borrowers, b)
					break
				}
				next := heap.Pop(borrowers).(account)
				heap.Push(borrowers, b)
				b = next
			}

			transfer := b.amount
			if credit < transfer {
				transfer = credit
			}
			if transfer > 0 {
				transfers = append(transfers, Transfer{
					FromID: b.userID,
					ToID:   lender.userID,
					Amount: transfer,
				})
				credit -= transfer
				b.amount -= transfer
			}
			if b.amount > 0 {
				heap.Push(borrowers, b)
			}
		}
		leftoverCredit += credit
	}

	var leftoverDebt Money
	for _, b := range *borrowers {
		leftoverDebt += b.amount
	}
	if leftoverCredit > 0 || leftoverDebt > 0 {
		return nil, fmt.Errorf("%w: %s credit and %s debt left unmatched",
			ErrUnbalancedLedger, leftoverCredit, leftoverDebt)
	}
	return transfers, nil
}
