package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrWrongPassword = errors.New("current password is incorrect")

// UserService handles profile and preference management.
type UserService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   slog.Default(),
	}
}

// UpdateProfileInput holds the fields a user may change on their own record.
// Email, password, role and provider are never touched here.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Name      *string
	Settings  models.SettingsMap
}

// GetProfile returns a user's own record.
func (s *UserService) GetProfile(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil || input.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if input.FirstName != nil {
			firstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			lastName = strings.TrimSpace(*input.LastName)
		}
		user.SetNameParts(firstName, lastName)
	} else if input.Name != nil {
		// Legacy combined-name updates are still accepted.
		user.SetName(strings.TrimSpace(*input.Name))
	}

	if input.Settings != nil {
		user.Settings = input.Settings
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetPreferences returns the user's settings map.
func (s *UserService) GetPreferences(userID uint64) (models.SettingsMap, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return user.Settings, nil
}

// UpdatePreferences replaces the user's settings map.
func (s *UserService) UpdatePreferences(userID uint64, settings models.SettingsMap) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	user.Settings = settings
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(userID uint64, currentPassword, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Save(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// ListAssignable lists active users for assignee pickers.
func (s *UserService) ListAssignable() ([]models.User, error) {
	users, err := s.userRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// RequestPasswordReset generates a reset token for the given email. Stub:
// token delivery is not implemented.
func (s *UserService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	// TODO: persist the reset token and deliver the reset email
	token, err := utils.RandomSecret(16)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	s.logger.Debug("generated password reset token", "email", user.Email, "token_id", token[:8])

	return nil
}

// ResetPassword completes a password reset. Stub: reset tokens are never
// stored, so there is nothing to validate against.
func (s *UserService) ResetPassword(token, newPassword string) error {
	return ErrNotImplemented
}
