package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger-backend/ledger"
)

func TestEdgesFromLedger(t *testing.T) {
	expenseID := uuid.New()
	creditor := uuid.New()
	debtor := uuid.New()

	records, err := EdgesFromLedger(expenseID, []ledger.Edge{
		{CreditorID: creditor.String(), DebtorID: debtor.String(), Amount: 3333},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, creditor, records[0].CreditorID)
	assert.Equal(t, debtor, records[0].DebtorID)
	assert.Equal(t, int64(3333), records[0].AmountMinor)
	assert.Equal(t, expenseID, records[0].ExpenseID)
}

func TestEdgesFromLedger_RejectsBadIDs(t *testing.T) {
	_, err := EdgesFromLedger(uuid.New(), []ledger.Edge{
		{CreditorID: "not-a-uuid", DebtorID: uuid.NewString(), Amount: 1},
	})
	require.Error(t, err)
}

func TestToLedger_RoundTripsEngineEdges(t *testing.T) {
	payee := uuid.NewString()
	friend := uuid.NewString()

	shares, err := ledger.ComputeShares(10000, ledger.StrategyEqual, []ledger.Participant{
		{UserID: payee}, {UserID: friend},
	})
	require.NoError(t, err)

	engineEdges := ledger.BuildEdges(payee, shares)
	records, err := EdgesFromLedger(uuid.New(), engineEdges)
	require.NoError(t, err)

	assert.Equal(t, engineEdges, ToLedger(records))
}
