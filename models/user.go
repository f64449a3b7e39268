package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:128" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:256" json:"email"`
	Phone     string    `gorm:"uniqueIndex;size:20" json:"phone,omitempty"`
	FCMToken  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=128"`
	Email string `json:"email" binding:"required,email,max=256"`
	Phone string `json:"phone"`
}

type UpdateFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Response struct (what we return to clients)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}
