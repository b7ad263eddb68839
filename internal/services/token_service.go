package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskflow/taskflow-api/internal/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenClaims is the claim set carried by issued tokens. The subject is the
// user's email.
type TokenClaims struct {
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens. Tokens are
// self-contained: there is no server-side session store, so a token stays
// valid until its expiry.
type TokenService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	timeFunc   func() time.Time
}

// NewTokenService creates a TokenService using HMAC-SHA256 signing.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	return &TokenService{
		signingKey: []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		timeFunc:   time.Now,
	}, nil
}

// IssueAccessToken produces a short-lived signed token for API calls.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	return s.issue(user, tokenTypeAccess, s.accessTTL)
}

// IssueRefreshToken produces a longer-lived token used only to mint new pairs.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	return s.issue(user, tokenTypeRefresh, s.refreshTTL)
}

func (s *TokenService) issue(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.timeFunc()
	claims := TokenClaims{
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateAccessToken verifies signature, expiry and token type of an access
// token. Fails closed: any malformed, expired or mis-signed input yields an
// error, never a panic.
func (s *TokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, tokenTypeAccess)
}

// ValidateRefreshToken verifies signature, expiry and token type of a refresh
// token.
func (s *TokenService) ValidateRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.validate(tokenString, tokenTypeRefresh)
}

func (s *TokenService) validate(tokenString, tokenType string) (*TokenClaims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
