package handlers

import (
	"context"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/utils"
)

// POST /api/settlements
func (h *Handler) CreateSettlement(c *gin.Context) {
	var req models.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		utils.BadRequest(c, "Invalid amount")
		return
	}

	paidBy, err := utils.ParseUUID(req.PaidBy)
	if err != nil {
		utils.BadRequest(c, "Invalid paid_by user ID")
		return
	}
	paidTo, err := utils.ParseUUID(req.PaidTo)
	if err != nil {
		utils.BadRequest(c, "Invalid paid_to user ID")
		return
	}
	if paidBy == paidTo {
		utils.BadRequest(c, "Cannot settle with yourself")
		return
	}

	amount := ledger.MoneyFromFloat(req.Amount)
	if amount <= 0 {
		utils.BadRequest(c, "Amount must be at least one minor unit")
		return
	}

	var payer, payee models.User
	if err := h.db.First(&payer, "id = ?", paidBy).Error; err != nil {
		utils.NotFound(c, "Payer not found")
		return
	}
	if err := h.db.First(&payee, "id = ?", paidTo).Error; err != nil {
		utils.NotFound(c, "Payee not found")
		return
	}

	settlement := models.Settlement{
		PaidBy:      paidBy,
		PaidTo:      paidTo,
		AmountMinor: int64(amount),
		Notes:       req.Notes,
	}
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}
		// The payment reduces the payer's debt: the payer becomes creditor
		// on the recorded edge, so the signed reduction nets it out.
		edge := models.LedgerEdge{
			CreditorID:  paidBy,
			DebtorID:    paidTo,
			AmountMinor: int64(amount),
		}
		return h.edges.WithTx(tx).AppendEdges(c.Request.Context(), []models.LedgerEdge{edge})
	}); err != nil {
		utils.InternalError(c, "Failed to record settlement")
		return
	}

	h.invalidateBalances(c.Request.Context(), paidBy, paidTo)

	go h.notifier.NotifySettlement(context.Background(), settlement, payer, payee)

	utils.SuccessResponse(c, http.StatusCreated, "Settlement recorded", models.SettlementResponse{
		ID:        settlement.ID,
		PaidBy:    settlement.PaidBy,
		PaidTo:    settlement.PaidTo,
		Amount:    amount.String(),
		Notes:     settlement.Notes,
		CreatedAt: settlement.CreatedAt,
	})
}

// GET /api/settlements
func (h *Handler) GetSettlements(c *gin.Context) {
	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var settlements []models.Settlement
	if err := h.db.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&settlements).Error; err != nil {
		utils.InternalError(c, "Failed to fetch settlements")
		return
	}

	responses := make([]models.SettlementResponse, 0, len(settlements))
	for _, s := range settlements {
		responses = append(responses, models.SettlementResponse{
			ID:        s.ID,
			PaidBy:    s.PaidBy,
			PaidTo:    s.PaidTo,
			Amount:    ledger.Money(s.AmountMinor).String(),
			Notes:     s.Notes,
			CreatedAt: s.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}
