package services

import (
	"context"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/storage"
)

// SummaryWorker periodically emails every user a digest of their
// outstanding balances.
type SummaryWorker struct {
	db       *gorm.DB
	edges    storage.LedgerStore
	notifier *Notifier
	interval time.Duration
	stopChan chan struct{}
	ticker   *time.Ticker
}

func NewSummaryWorker(db *gorm.DB, edges storage.LedgerStore, notifier *Notifier, interval time.Duration) *SummaryWorker {
	return &SummaryWorker{
		db:       db,
		edges:    edges,
		notifier: notifier,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *SummaryWorker) Start() {
	w.ticker = time.NewTicker(w.interval)
	go w.loop()
	log.Printf("⏰ Summary worker started (every %s)", w.interval)
}

func (w *SummaryWorker) Stop() {
	close(w.stopChan)
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *SummaryWorker) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case <-w.ticker.C:
			w.runOnce(context.Background())
		}
	}
}

func (w *SummaryWorker) runOnce(ctx context.Context) {
	var users []models.User
	if err := w.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Printf("❌ Summary: failed to load users: %v", err)
		return
	}

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID.String()] = u.Name
	}

	for _, user := range users {
		records, err := w.edges.EdgesForUser(ctx, user.ID)
		if err != nil {
			log.Printf("❌ Summary: failed to load edges for %s: %v", user.ID, err)
			continue
		}

		balances := ledger.NetBalance(models.ToLedger(records), user.ID.String())
		if len(balances) == 0 {
			continue
		}

		var b strings.Builder
		b.WriteString("Here is the summary of amounts owed:\n\n")
		for _, bal := range balances {
			name := names[bal.CounterpartyID]
			if name == "" {
				name = bal.CounterpartyID
			}
			if bal.Amount < 0 {
				b.WriteString("You owe " + (-bal.Amount).String() + " to " + name + "\n")
			} else {
				b.WriteString(name + " owes you " + bal.Amount.String() + "\n")
			}
		}

		w.notifier.SendSummary(user, b.String())
	}
}
