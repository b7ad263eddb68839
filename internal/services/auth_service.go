package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrTokenSigning         = errors.New("failed to generate authentication tokens")
	ErrNotImplemented       = errors.New("not implemented")
)

// dummyPasswordHash is compared against when the email is unknown so that
// both failure paths cost one bcrypt comparison.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService handles registration, login, token refresh and logout.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   slog.Default(),
	}
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new local user account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         constants.RoleUser,
		IsActive:     true,
	}
	user.SetNameParts(strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))

	// TODO: persist the verification token and deliver the verification email
	verificationToken := uuid.NewString()
	s.logger.Debug("generated verification token", "email", email, "token_id", verificationToken[:8])

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies an email/password pair. The returned error is the
// same whether the email is unknown or the password wrong.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user, records the login time and issues a token pair.
func (s *AuthService) Login(email, password string) (*models.User, *TokenPair, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Save(user); err != nil {
		return nil, nil, fmt.Errorf("failed to record login: %w", err)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and mints a fresh token pair. The old
// refresh token is not revoked; revocation needs a server-side denylist.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.issuePair(user)
}

// Logout is a placeholder. True revocation requires storing refresh tokens in
// a denylist, which is out of scope here.
func (s *AuthService) Logout(refreshToken string) error {
	return nil
}

// VerifyEmail completes e-mail verification. Stub: verification tokens are
// generated at registration but never stored or delivered.
func (s *AuthService) VerifyEmail(token string) error {
	return ErrNotImplemented
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "email", user.Email)
		return nil, ErrTokenSigning
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		s.logger.Error("failed to sign refresh token", "error", err, "email", user.Email)
		return nil, ErrTokenSigning
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
