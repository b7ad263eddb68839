package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64             `json:"id"`
	FirstName    string             `json:"first_name,omitempty"`
	LastName     string             `json:"last_name,omitempty"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	AuthProvider string             `json:"auth_provider,omitempty"`
	Settings     models.SettingsMap `json:"settings,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	LastLogin    *time.Time         `json:"last_login,omitempty"`
}

// UserSummaryDTO represents a user in pickers and task relations
type UserSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		IsActive:     user.IsActive,
		AuthProvider: user.AuthProvider,
		Settings:     user.Settings,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToUserSummaryList converts a slice of users to summaries
func ToUserSummaryList(users []models.User) []UserSummaryDTO {
	summaries := make([]UserSummaryDTO, len(users))
	for i, user := range users {
		summaries[i] = ToUserSummaryDTO(user)
	}
	return summaries
}
