package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_ChainScenario(t *testing.T) {
	// A owes B 250, B owes C 200 nets to A=-250, B=+50, C=+200 and must
	// settle with exactly two transfers.
	totals := NetBalanceAll([]Edge{
		{CreditorID: "b", DebtorID: "a", Amount: 25000},
		{CreditorID: "c", DebtorID: "b", Amount: 20000},
	})

	transfers, err := Simplify(totals)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Transfer{
		{FromID: "a", ToID: "c", Amount: 20000},
		{FromID: "a", ToID: "b", Amount: 5000},
	}, transfers)
	assert.LessOrEqual(t, len(transfers), 2, "at most non-zero positions minus one")
}

func TestSimplify_Cycle(t *testing.T) {
	// A perfect cycle nets everyone to zero: nothing to settle.
	totals := NetBalanceAll([]Edge{
		{CreditorID: "b", DebtorID: "a", Amount: 20000},
		{CreditorID: "c", DebtorID: "b", Amount: 20000},
		{CreditorID: "a", DebtorID: "c", Amount: 20000},
	})

	transfers, err := Simplify(totals)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestSimplify_SingleLenderManyBorrowers(t *testing.T) {
	totals := map[string]Money{
		"lender": 60000,
		"b1":     -10000,
		"b2":     -20000,
		"b3":     -30000,
	}

	transfers, err := Simplify(totals)
	require.NoError(t, err)

	// Largest debts are matched first.
	require.Len(t, transfers, 3)
	assert.Equal(t, Transfer{FromID: "b3", ToID: "lender", Amount: 30000}, transfers[0])
	assert.Equal(t, Transfer{FromID: "b2", ToID: "lender", Amount: 20000}, transfers[1])
	assert.Equal(t, Transfer{FromID: "b1", ToID: "lender", Amount: 10000}, transfers[2])
}

func TestSimplify_BorrowerSpansLenders(t *testing.T) {
	totals := map[string]Money{
		"a": -25000,
		"b": 5000,
		"c": 20000,
	}

	transfers, err := Simplify(totals)
	require.NoError(t, err)

	var debtPaid Money
	for _, tr := range transfers {
		require.Equal(t, "a", tr.FromID)
		require.Positive(t, tr.Amount)
		debtPaid += tr.Amount
	}
	assert.Equal(t, Money(25000), debtPaid, "transfers grouped by payer must equal that payer's total debt")
}

func TestSimplify_Deterministic(t *testing.T) {
	totals := map[string]Money{
		"a": -10000,
		"b": -10000,
		"c": 10000,
		"d": 10000,
	}

	first, err := Simplify(totals)
	require.NoError(t, err)
	second, err := Simplify(totals)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Ties broken by user id order on both sides.
	require.Len(t, first, 2)
	assert.Equal(t, Transfer{FromID: "a", ToID: "c", Amount: 10000}, first[0])
	assert.Equal(t, Transfer{FromID: "b", ToID: "d", Amount: 10000}, first[1])
}

func TestSimplify_IgnoresZeroPositions(t *testing.T) {
	totals := map[string]Money{
		"a": -5000,
		"b": 5000,
		"c": 0,
	}

	transfers, err := Simplify(totals)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, Transfer{FromID: "a", ToID: "b", Amount: 5000}, transfers[0])
}

func TestSimplify_Empty(t *testing.T) {
	transfers, err := Simplify(nil)
	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestSimplify_Unbalanced(t *testing.T) {
	tests := []struct {
		name   string
		totals map[string]Money
	}{
		{name: "excess debt", totals: map[string]Money{"a": -10000, "b": 5000}},
		{name: "excess credit", totals: map[string]Money{"a": -5000, "b": 10000}},
		{name: "credit only", totals: map[string]Money{"a": 10000}},
		{name: "debt only", totals: map[string]Money{"a": -10000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simplify(tt.totals)
			require.ErrorIs(t, err, ErrUnbalancedLedger)
		})
	}
}

func TestSimplify_PipelineConservation(t *testing.T) {
	// Full pipeline: expense shares to edges to net positions to plan.
	shares, err := ComputeShares(90000, StrategyEqual, []Participant{
		{UserID: "payer"}, {UserID: "x"}, {UserID: "y"},
	})
	require.NoError(t, err)

	edges := BuildEdges("payer", shares)
	transfers, err := Simplify(NetBalanceAll(edges))
	require.NoError(t, err)

	var settled Money
	for _, tr := range transfers {
		require.Equal(t, "payer", tr.ToID)
		settled += tr.Amount
	}
	assert.Equal(t, Money(60000), settled)
}
