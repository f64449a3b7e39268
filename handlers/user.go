package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"splitledger-backend/models"
	"splitledger-backend/utils"
)

// POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Username, email or phone already registered")
			return
		}
		utils.InternalError(c, "Failed to create user")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "User created", user.ToResponse())
}

// GET /api/users
func (h *Handler) GetUsers(c *gin.Context) {
	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var users []models.User
	if err := h.db.Order("created_at ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.InternalError(c, "Failed to fetch users")
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "", user.ToResponse())
}

// PUT /api/users/:id/fcm-token
func (h *Handler) UpdateFCMToken(c *gin.Context) {
	userID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	var req models.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	result := h.db.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", req.Token)
	if result.Error != nil {
		utils.InternalError(c, "Failed to update FCM token")
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "FCM token updated", nil)
}
