package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitledger-backend/models"
)

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

// Validation paths that fail before any collaborator is touched.
func TestAddExpense_Validation(t *testing.T) {
	h := New(nil, nil, nil, nil)
	payee := uuid.NewString()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing payee", body: `{"amount": 100, "split_type": "EQUAL", "participants": [{"user_id": "` + payee + `"}]}`},
		{name: "malformed payee id", body: `{"payee_id": "abc", "amount": 100, "split_type": "EQUAL", "participants": [{"user_id": "` + payee + `"}]}`},
		{name: "unknown split type", body: `{"payee_id": "` + payee + `", "amount": 100, "split_type": "SHARES", "participants": [{"user_id": "` + payee + `"}]}`},
		{name: "negative amount", body: `{"payee_id": "` + payee + `", "amount": -1, "split_type": "EQUAL", "participants": [{"user_id": "` + payee + `"}]}`},
		{name: "malformed participant id", body: `{"payee_id": "` + payee + `", "amount": 100, "split_type": "EQUAL", "participants": [{"user_id": "nope"}]}`},
		{name: "missing participants", body: `{"payee_id": "` + payee + `", "amount": 100, "split_type": "EQUAL"}`},
		{name: "malformed expense date", body: `{"payee_id": "` + payee + `", "amount": 100, "split_type": "EQUAL", "expense_date": "13/01/2024", "participants": [{"user_id": "` + payee + `"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.AddExpense, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateSettlement_Validation(t *testing.T) {
	h := New(nil, nil, nil, nil)
	user := uuid.NewString()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing paid_to", body: `{"paid_by": "` + user + `", "amount": 10}`},
		{name: "malformed paid_by", body: `{"paid_by": "abc", "paid_to": "` + user + `", "amount": 10}`},
		{name: "zero amount", body: `{"paid_by": "` + user + `", "paid_to": "` + uuid.NewString() + `", "amount": 0}`},
		{name: "self settlement", body: `{"paid_by": "` + user + `", "paid_to": "` + user + `", "amount": 10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.CreateSettlement, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBuildExpenseResponse(t *testing.T) {
	payee := uuid.New()
	friend := uuid.New()
	expense := models.Expense{
		ID:          uuid.New(),
		PayeeID:     payee,
		AmountMinor: 10000,
		SplitType:   "EQUAL",
		Participants: []models.ExpenseParticipant{
			{UserID: payee, AmountMinor: 5000},
			{UserID: friend, AmountMinor: 5000},
		},
	}
	users := map[string]models.User{
		payee.String(): {ID: payee, Name: "Asha"},
	}

	resp := buildExpenseResponse(expense, users)

	assert.Equal(t, "100.00", resp.Amount)
	assert.Equal(t, "Asha", resp.PayeeName)
	require.Len(t, resp.Participants, 2)
	assert.Equal(t, "50.00", resp.Participants[0].Amount)
	assert.Equal(t, "50.00", resp.Participants[1].Amount)
}
