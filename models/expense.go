package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitledger-backend/ledger"
)

type Expense struct {
	ID           uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	PayeeID      uuid.UUID            `gorm:"type:uuid;index;not null" json:"payee_id"`
	Payee        User                 `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
	AmountMinor  int64                `gorm:"not null" json:"-"`
	SplitType    string               `gorm:"not null;size:20" json:"split_type"` // EQUAL, EXACT, PERCENT, WEIGHT
	Name         string               `gorm:"size:128" json:"name,omitempty"`
	Notes        string               `gorm:"size:500" json:"notes,omitempty"`
	ReceiptURL   string               `json:"receipt_url,omitempty"`
	ExpenseDate  time.Time            `gorm:"index" json:"expense_date"`
	Participants []ExpenseParticipant `gorm:"foreignKey:ExpenseID" json:"participants,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Amount returns the expense amount in minor units.
func (e *Expense) Amount() ledger.Money {
	return ledger.Money(e.AmountMinor)
}

// ExpenseParticipant is one computed share embedded in the expense record.
type ExpenseParticipant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExpenseID   uuid.UUID `gorm:"type:uuid;index" json:"expense_id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	AmountMinor int64     `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *ExpenseParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Request structs
type ParticipantInput struct {
	UserID       string   `json:"user_id" binding:"required"`
	Contribution *float64 `json:"contribution"` // ignored for EQUAL; amount, percent or weight otherwise
}

type AddExpenseRequest struct {
	PayeeID      string             `json:"payee_id" binding:"required"`
	Amount       float64            `json:"amount" binding:"min=0"`
	SplitType    string             `json:"split_type" binding:"required"`
	Name         string             `json:"name" binding:"max=128"`
	Notes        string             `json:"notes" binding:"max=500"`
	ExpenseDate  string             `json:"expense_date"` // YYYY-MM-DD, defaults to today
	Participants []ParticipantInput `json:"participants" binding:"required"`
}

// Response structs. Amounts render as 2-decimal strings at the presentation
// boundary; the stored values stay in minor units.
type ExpenseResponse struct {
	ID           uuid.UUID             `json:"id"`
	PayeeID      uuid.UUID             `json:"payee_id"`
	PayeeName    string                `json:"payee_name,omitempty"`
	Amount       string                `json:"amount"`
	SplitType    string                `json:"split_type"`
	Name         string                `json:"name,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	ReceiptURL   string                `json:"receipt_url,omitempty"`
	ExpenseDate  time.Time             `json:"expense_date"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
}

type ParticipantResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Amount string    `json:"amount"`
}
