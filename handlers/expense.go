package handlers

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/utils"
)

// POST /api/expenses
func (h *Handler) AddExpense(c *gin.Context) {
	var req models.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		utils.BadRequest(c, "Invalid amount")
		return
	}

	payeeID, err := utils.ParseUUID(req.PayeeID)
	if err != nil {
		utils.BadRequest(c, "Invalid payee ID")
		return
	}

	strategy, err := ledger.ParseStrategy(req.SplitType)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	participants, err := toEngineParticipants(req.Participants)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		expenseDate, err = time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			utils.BadRequest(c, "Invalid expense_date, want YYYY-MM-DD")
			return
		}
	}

	// Every referenced user must exist.
	users, err := h.loadExpenseUsers(payeeID, req.Participants)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	amount := ledger.MoneyFromFloat(req.Amount)
	shares, err := ledger.ComputeShares(amount, strategy, participants)
	if err != nil {
		engineError(c, err)
		return
	}

	expense := models.Expense{
		PayeeID:     payeeID,
		AmountMinor: int64(amount),
		SplitType:   string(strategy),
		Name:        req.Name,
		Notes:       req.Notes,
		ExpenseDate: expenseDate,
	}
	for _, s := range shares {
		expense.Participants = append(expense.Participants, models.ExpenseParticipant{
			UserID:      uuid.MustParse(s.UserID),
			AmountMinor: int64(s.Amount),
		})
	}

	// Expense, shares and ledger edges commit atomically: a stored expense
	// whose edges are missing would disagree with the debt graph.
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		records, err := models.EdgesFromLedger(expense.ID, ledger.BuildEdges(payeeID.String(), shares))
		if err != nil {
			return err
		}
		return h.edges.WithTx(tx).AppendEdges(c.Request.Context(), records)
	}); err != nil {
		log.Printf("❌ Failed to persist expense: %v", err)
		utils.InternalError(c, "Failed to create expense")
		return
	}

	touched := make([]uuid.UUID, 0, len(expense.Participants)+1)
	touched = append(touched, payeeID)
	for _, p := range expense.Participants {
		touched = append(touched, p.UserID)
	}
	h.invalidateBalances(c.Request.Context(), touched...)

	go h.notifier.NotifyExpenseAdded(context.Background(), expense, users)

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", buildExpenseResponse(expense, users))
}

// GET /api/expenses/:id
func (h *Handler) GetExpense(c *gin.Context) {
	expenseID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := h.db.Preload("Participants").Preload("Payee").First(&expense, "id = ?", expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	users := map[string]models.User{expense.PayeeID.String(): expense.Payee}
	utils.SuccessResponse(c, http.StatusOK, "", buildExpenseResponse(expense, users))
}

// GET /api/users/:id/expenses
func (h *Handler) GetUserExpenses(c *gin.Context) {
	userID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var participantExpenseIDs []uuid.UUID
	h.db.Model(&models.ExpenseParticipant{}).
		Where("user_id = ?", userID).
		Pluck("expense_id", &participantExpenseIDs)

	var expenses []models.Expense
	query := h.db.Preload("Participants").Preload("Payee")
	if len(participantExpenseIDs) > 0 {
		query = query.Where("payee_id = ? OR id IN ?", userID, participantExpenseIDs)
	} else {
		query = query.Where("payee_id = ?", userID)
	}
	if err := query.Order("expense_date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses).Error; err != nil {
		utils.InternalError(c, "Failed to fetch expenses")
		return
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		users := map[string]models.User{e.PayeeID.String(): e.Payee}
		responses = append(responses, buildExpenseResponse(e, users))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// toEngineParticipants converts request participants into engine inputs.
// A missing contribution becomes zero; each strategy validates what it needs.
func toEngineParticipants(inputs []models.ParticipantInput) ([]ledger.Participant, error) {
	participants := make([]ledger.Participant, 0, len(inputs))
	for _, in := range inputs {
		if _, err := uuid.Parse(in.UserID); err != nil {
			return nil, fmt.Errorf("invalid user ID: %s", in.UserID)
		}
		contribution := decimal.Zero
		if in.Contribution != nil {
			if math.IsNaN(*in.Contribution) || math.IsInf(*in.Contribution, 0) {
				return nil, fmt.Errorf("invalid contribution for user %s", in.UserID)
			}
			contribution = decimal.NewFromFloat(*in.Contribution)
		}
		participants = append(participants, ledger.Participant{
			UserID:       in.UserID,
			Contribution: contribution,
		})
	}
	return participants, nil
}

// loadExpenseUsers fetches the payee and all participants, failing when any
// of them is unknown.
func (h *Handler) loadExpenseUsers(payeeID uuid.UUID, inputs []models.ParticipantInput) (map[string]models.User, error) {
	idSet := map[uuid.UUID]struct{}{payeeID: {}}
	for _, in := range inputs {
		id, err := uuid.Parse(in.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID: %s", in.UserID)
		}
		idSet[id] = struct{}{}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var users []models.User
	if err := h.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users")
	}
	if len(users) != len(ids) {
		return nil, fmt.Errorf("one or more users do not exist")
	}

	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID.String()] = u
	}
	return byID, nil
}

func buildExpenseResponse(expense models.Expense, users map[string]models.User) models.ExpenseResponse {
	participants := make([]models.ParticipantResponse, 0, len(expense.Participants))
	for _, p := range expense.Participants {
		participants = append(participants, models.ParticipantResponse{
			UserID: p.UserID,
			Amount: ledger.Money(p.AmountMinor).String(),
		})
	}

	return models.ExpenseResponse{
		ID:           expense.ID,
		PayeeID:      expense.PayeeID,
		PayeeName:    users[expense.PayeeID.String()].Name,
		Amount:       expense.Amount().String(),
		SplitType:    expense.SplitType,
		Name:         expense.Name,
		Notes:        expense.Notes,
		ReceiptURL:   expense.ReceiptURL,
		ExpenseDate:  expense.ExpenseDate,
		Participants: participants,
		CreatedAt:    expense.CreatedAt,
	}
}
