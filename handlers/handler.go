package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"splitledger-backend/ledger"
	"splitledger-backend/services"
	"splitledger-backend/storage"
	"splitledger-backend/utils"
)

// Handler carries the collaborators every route needs. The ledger store and
// notifier are passed in explicitly; cache may be nil when Redis is absent.
type Handler struct {
	db       *gorm.DB
	edges    storage.LedgerStore
	cache    *redis.Client
	notifier *services.Notifier
}

func New(db *gorm.DB, edges storage.LedgerStore, cache *redis.Client, notifier *services.Notifier) *Handler {
	return &Handler{db: db, edges: edges, cache: cache, notifier: notifier}
}

// engineError maps core validation failures to 400 and everything else
// to 500.
func engineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidSplit),
		errors.Is(err, ledger.ErrPercentOverflow),
		errors.Is(err, ledger.ErrEmptyParticipants):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, err.Error())
	}
}

const balanceCachePrefix = "balances:"

// invalidateBalances drops cached balance responses for the given users.
func (h *Handler) invalidateBalances(ctx context.Context, userIDs ...uuid.UUID) {
	if h.cache == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, balanceCachePrefix+id.String())
	}
	h.cache.Del(ctx, keys...)
}
