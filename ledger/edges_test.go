package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEdges(t *testing.T) {
	shares := []Share{
		{UserID: "payee", Amount: 3334},
		{UserID: "friend1", Amount: 3333},
		{UserID: "friend2", Amount: 3333},
	}

	edges := BuildEdges("payee", shares)

	require.Len(t, edges, 2)
	assert.Equal(t, Edge{CreditorID: "payee", DebtorID: "friend1", Amount: 3333}, edges[0])
	assert.Equal(t, Edge{CreditorID: "payee", DebtorID: "friend2", Amount: 3333}, edges[1])
}

func TestBuildEdges_SkipsZeroShares(t *testing.T) {
	edges := BuildEdges("p", []Share{
		{UserID: "a", Amount: 0},
		{UserID: "b", Amount: 1},
	})

	require.Len(t, edges, 1)
	assert.Equal(t, "b", edges[0].DebtorID)
}

func TestBuildEdges_PayeeOnly(t *testing.T) {
	edges := BuildEdges("p", []Share{{UserID: "p", Amount: 10000}})
	assert.Empty(t, edges)
}
