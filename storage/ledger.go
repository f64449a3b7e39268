package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"splitledger-backend/models"
)

// LedgerStore is the durable home of debt edges. The engine only ever
// appends edges and reads snapshots; nothing updates an edge in place.
type LedgerStore interface {
	AppendEdges(ctx context.Context, edges []models.LedgerEdge) error
	EdgesForUser(ctx context.Context, userID uuid.UUID) ([]models.LedgerEdge, error)
	AllEdges(ctx context.Context) ([]models.LedgerEdge, error)
	// WithTx binds the store to an open transaction so edge appends
	// commit atomically with the caller's other writes.
	WithTx(tx *gorm.DB) LedgerStore
}

type gormLedgerStore struct {
	db *gorm.DB
}

// NewLedgerStore returns the Postgres-backed ledger store.
func NewLedgerStore(db *gorm.DB) LedgerStore {
	return &gormLedgerStore{db: db}
}

func (s *gormLedgerStore) WithTx(tx *gorm.DB) LedgerStore {
	return &gormLedgerStore{db: tx}
}

func (s *gormLedgerStore) AppendEdges(ctx context.Context, edges []models.LedgerEdge) error {
	if len(edges) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&edges).Error
}

func (s *gormLedgerStore) EdgesForUser(ctx context.Context, userID uuid.UUID) ([]models.LedgerEdge, error) {
	var edges []models.LedgerEdge
	err := s.db.WithContext(ctx).
		Where("creditor_id = ? OR debtor_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&edges).Error
	return edges, err
}

func (s *gormLedgerStore) AllEdges(ctx context.Context) ([]models.LedgerEdge, error) {
	var edges []models.LedgerEdge
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&edges).Error
	return edges, err
}
