package models

// User defines the user model based on the 'users' table
type User struct {
	ID             int64  `json:"id" db:"id" example:"1"`                          // Unique identifier for the user
	Username       string `json:"username" db:"username" example:"alice"`          // Login name, unique
	Email          string `json:"email" db:"email" example:"alice@example.com"`    // Email address, unique
	HashedPassword string `json:"-" db:"hashed_password"`                          // bcrypt encoding (excluded from JSON)
	IsActive       bool   `json:"is_active" db:"is_active" example:"true"`         // Stored and returned, not enforced at login
}
