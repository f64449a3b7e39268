package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splitledger-backend/config"
	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/utils"
)

// GET /api/users/:id/balances
func (h *Handler) GetUserBalances(c *gin.Context) {
	userID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	cacheKey := balanceCachePrefix + userID.String()
	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var responses []models.BalanceResponse
			if json.Unmarshal([]byte(cached), &responses) == nil {
				utils.SuccessResponse(c, http.StatusOK, "", responses)
				return
			}
		}
	}

	records, err := h.edges.EdgesForUser(c.Request.Context(), userID)
	if err != nil {
		utils.InternalError(c, "Failed to fetch ledger edges")
		return
	}

	balances := ledger.NetBalance(models.ToLedger(records), userID.String())
	responses := h.toBalanceResponses(balances)

	if h.cache != nil {
		if payload, err := json.Marshal(responses); err == nil {
			h.cache.Set(c.Request.Context(), cacheKey, payload, config.AppConfig.BalanceCacheTTL)
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/settlements/plan
func (h *Handler) GetSettlementPlan(c *gin.Context) {
	records, err := h.edges.AllEdges(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to fetch ledger edges")
		return
	}

	totals := ledger.NetBalanceAll(models.ToLedger(records))
	transfers, err := ledger.Simplify(totals)
	if err != nil {
		if errors.Is(err, ledger.ErrUnbalancedLedger) {
			utils.InternalError(c, "Ledger is inconsistent: "+err.Error())
			return
		}
		utils.InternalError(c, "Failed to compute settlement plan")
		return
	}

	ids := make(map[uuid.UUID]struct{})
	for _, t := range transfers {
		ids[uuid.MustParse(t.FromID)] = struct{}{}
		ids[uuid.MustParse(t.ToID)] = struct{}{}
	}
	names := h.userNames(ids)

	plan := models.SettlementPlanResponse{
		Transfers: make([]models.SettlementTransferResponse, 0, len(transfers)),
	}
	for _, t := range transfers {
		fromID := uuid.MustParse(t.FromID)
		toID := uuid.MustParse(t.ToID)
		plan.Transfers = append(plan.Transfers, models.SettlementTransferResponse{
			FromID:   fromID,
			FromName: names[fromID],
			ToID:     toID,
			ToName:   names[toID],
			Amount:   t.Amount.String(),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", plan)
}

func (h *Handler) toBalanceResponses(balances []ledger.Balance) []models.BalanceResponse {
	ids := make(map[uuid.UUID]struct{}, len(balances))
	for _, b := range balances {
		ids[uuid.MustParse(b.CounterpartyID)] = struct{}{}
	}
	names := h.userNames(ids)

	responses := make([]models.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		id := uuid.MustParse(b.CounterpartyID)
		responses = append(responses, models.BalanceResponse{
			UserID:     id,
			UserName:   names[id],
			AmountOwed: b.Amount.String(),
		})
	}
	return responses
}

func (h *Handler) userNames(ids map[uuid.UUID]struct{}) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	list := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}

	var users []models.User
	h.db.Where("id IN ?", list).Find(&users)
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}
