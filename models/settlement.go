package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement records an actual payment between two users. Recording one also
// appends the equivalent ledger edge so recomputed balances reflect it.
type Settlement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PaidBy      uuid.UUID `gorm:"type:uuid;index;not null" json:"paid_by"`
	PaidTo      uuid.UUID `gorm:"type:uuid;index;not null" json:"paid_to"`
	AmountMinor int64     `gorm:"not null" json:"-"`
	Notes       string    `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CreateSettlementRequest struct {
	PaidBy string  `json:"paid_by" binding:"required"`
	PaidTo string  `json:"paid_to" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Notes  string  `json:"notes" binding:"max=500"`
}

type SettlementResponse struct {
	ID        uuid.UUID `json:"id"`
	PaidBy    uuid.UUID `json:"paid_by"`
	PaidTo    uuid.UUID `json:"paid_to"`
	Amount    string    `json:"amount"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
