package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
)

// UserHandler coordinates profile and preference HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		FirstName *string            `json:"first_name"`
		LastName  *string            `json:"last_name"`
		Name      *string            `json:"name"`
		Settings  models.SettingsMap `json:"settings"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Name:      req.Name,
		Settings:  req.Settings,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetPreferences returns the caller's settings map.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	settings, err := h.userService.GetPreferences(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	if settings == nil {
		settings = models.SettingsMap{}
	}

	c.JSON(http.StatusOK, settings)
}

// UpdatePreferences replaces the caller's settings map. Non-object bodies
// fail binding with a 400.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var settings models.SettingsMap
	if err := c.ShouldBindJSON(&settings); err != nil {
		apierrors.BadRequest(c, "Preferences must be a JSON object")
		return
	}

	if err := h.userService.UpdatePreferences(userID, settings); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated",
	})
}

// ChangePassword verifies the current password and stores a new one.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}

// ListAssignable lists active users for assignee pickers.
func (h *UserHandler) ListAssignable(c *gin.Context) {
	users, err := h.userService.ListAssignable()
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserSummaryList(users),
	})
}

// RequestPasswordReset generates a reset token. Delivery is a documented stub.
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	type ResetRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.RequestPasswordReset(req.Email); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset requested",
	})
}
