package dto

import "github.com/yigit/gradebook/internal/app/models"

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID       int64  `json:"id" example:"1"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	IsActive bool   `json:"is_active" example:"true"`
}

// NewUserResponse converts a user model, dropping the password hash
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
	}
}
