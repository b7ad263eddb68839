package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrMissingClaim is returned when an external identity payload lacks an
// email or provider subject id.
var ErrMissingClaim = errors.New("external identity is missing required claims")

// ExternalIdentity is the verified claim set supplied by an identity provider
// after the external handshake.
type ExternalIdentity struct {
	Provider   string
	ExternalID string
	Email      string
	Name       string
}

// OAuthService resolves external identity-provider profiles to local user
// records and handles the post-handshake login path.
type OAuthService struct {
	userRepo    repository.UserRepository
	tokens      *TokenService
	redirectURI string
	logger      *slog.Logger
}

// NewOAuthService creates a new OAuthService.
func NewOAuthService(userRepo repository.UserRepository, tokens *TokenService, redirectURI string) *OAuthService {
	return &OAuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		redirectURI: redirectURI,
		logger:      slog.Default(),
	}
}

// ResolveExternalIdentity finds or creates the local user for an external
// identity, reconciling provider metadata on repeat logins:
//
//   - unknown email: a new active USER is created with a random password hash
//   - local account: the external identity is linked without touching the password
//   - different provider: conflict is logged, the external id is merged permissively
//   - changed external id: the provider is treated as authoritative and the id updated
//
// The display name is refreshed whenever the provider supplies a differing one.
func (s *OAuthService) ResolveExternalIdentity(identity ExternalIdentity) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(identity.Email))
	if email == "" || identity.ExternalID == "" {
		return nil, ErrMissingClaim
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		return s.createExternalUser(email, identity)
	}

	switch {
	case user.AuthProvider == "":
		s.logger.Info("linking external account to local user",
			"provider", identity.Provider, "email", email)
		user.AuthProvider = identity.Provider
		user.ProviderID = identity.ExternalID
	case user.AuthProvider != identity.Provider:
		// Email already claimed by another provider. Deliberately permissive:
		// log the conflict and merge the external id rather than reject.
		s.logger.Warn("user already linked to a different provider",
			"email", email, "existing", user.AuthProvider, "attempted", identity.Provider)
		if user.ProviderID == "" {
			user.ProviderID = identity.ExternalID
		}
	case user.ProviderID != identity.ExternalID:
		// The identity provider is authoritative for its own subject ids.
		s.logger.Warn("external id mismatch, updating to latest",
			"email", email, "existing", user.ProviderID, "new", identity.ExternalID)
		user.ProviderID = identity.ExternalID
	}

	if identity.Name != "" && identity.Name != user.Name {
		user.SetName(identity.Name)
	}

	if err := s.userRepo.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// HandleLogin resolves the external identity, issues an access token (no
// refresh token on this path) and returns the frontend redirect URL carrying
// the token as a query parameter.
func (s *OAuthService) HandleLogin(identity ExternalIdentity) (*models.User, string, error) {
	user, err := s.ResolveExternalIdentity(identity)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.logger.Error("failed to sign access token", "error", err, "email", user.Email)
		return nil, "", ErrTokenSigning
	}

	redirect := fmt.Sprintf("%s?token=%s", s.redirectURI, url.QueryEscape(token))
	return user, redirect, nil
}

// ErrorRedirect builds a frontend redirect URL carrying an error message.
func (s *OAuthService) ErrorRedirect(message string) string {
	return fmt.Sprintf("%s?error=%s", s.redirectURI, url.QueryEscape(message))
}

func (s *OAuthService) createExternalUser(email string, identity ExternalIdentity) (*models.User, error) {
	s.logger.Info("creating new user for external login",
		"provider", identity.Provider, "email", email)

	// The password column is always populated; external accounts get a random
	// hash because they have no local password path.
	randomPassword, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(randomPassword),
		Role:         constants.RoleUser,
		IsActive:     true,
		AuthProvider: identity.Provider,
		ProviderID:   identity.ExternalID,
	}
	user.SetName(identity.Name)

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
