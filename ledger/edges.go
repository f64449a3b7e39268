package ledger

// Edge is one directed debt record: DebtorID owes CreditorID Amount. Edges
// are produced here, persisted by the storage layer and never mutated.
type Edge struct {
	CreditorID string
	DebtorID   string
	Amount     Money
}

// BuildEdges derives the debt edges of one expense: the payee fronted the
// money, so every other participant owes the payee their share. The payee's
// own share produces no edge, and neither do zero shares.
func BuildEdges(payeeID string, shares []Share) []Edge {
	edges := make([]Edge, 0, len(shares))
	for _, s := range shares {
		if s.UserID == payeeID || s.Amount <= 0 {
			continue
		}
		edges = append(edges, Edge{
			CreditorID: payeeID,
			DebtorID:   s.UserID,
			Amount:     s.Amount,
		})
	}
	return edges
}
