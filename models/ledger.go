package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitledger-backend/ledger"
)

// LedgerEdge is one durable debt record: the debtor owes the creditor the
// amount. Edges are append-only; balances are always recomputed from them.
type LedgerEdge struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreditorID  uuid.UUID `gorm:"type:uuid;index;not null" json:"creditor_id"`
	DebtorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"debtor_id"`
	AmountMinor int64     `gorm:"not null" json:"-"`
	ExpenseID   uuid.UUID `gorm:"type:uuid;index" json:"expense_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e *LedgerEdge) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Amount returns the edge amount in minor units.
func (e *LedgerEdge) Amount() ledger.Money {
	return ledger.Money(e.AmountMinor)
}

// EdgesFromLedger converts engine edges to persistable records.
func EdgesFromLedger(expenseID uuid.UUID, edges []ledger.Edge) ([]LedgerEdge, error) {
	records := make([]LedgerEdge, 0, len(edges))
	for _, e := range edges {
		creditor, err := uuid.Parse(e.CreditorID)
		if err != nil {
			return nil, err
		}
		debtor, err := uuid.Parse(e.DebtorID)
		if err != nil {
			return nil, err
		}
		records = append(records, LedgerEdge{
			CreditorID:  creditor,
			DebtorID:    debtor,
			AmountMinor: int64(e.Amount),
			ExpenseID:   expenseID,
		})
	}
	return records, nil
}

// ToLedger converts persisted records back to engine edges.
func ToLedger(records []LedgerEdge) []ledger.Edge {
	edges := make([]ledger.Edge, 0, len(records))
	for _, r := range records {
		edges = append(edges, ledger.Edge{
			CreditorID: r.CreditorID.String(),
			DebtorID:   r.DebtorID.String(),
			Amount:     r.Amount(),
		})
	}
	return edges
}

// Response structs
type BalanceResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	AmountOwed string    `json:"amount_owed"` // positive: they owe you; negative: you owe them
}

type SettlementTransferResponse struct {
	FromID   uuid.UUID `json:"from_id"`
	FromName string    `json:"from_name,omitempty"`
	ToID     uuid.UUID `json:"to_id"`
	ToName   string    `json:"to_name,omitempty"`
	Amount   string    `json:"amount"`
}

type SettlementPlanResponse struct {
	Transfers []SettlementTransferResponse `json:"transfers"`
}
