package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubVerifier returns a canned identity instead of calling the provider.
type stubVerifier struct {
	identity services.ExternalIdentity
	err      error
}

func (v stubVerifier) Verify(ctx context.Context, code string) (services.ExternalIdentity, error) {
	return v.identity, v.err
}

type oauthTestEnv struct {
	db     *gorm.DB
	tokens *services.TokenService
}

func setupOAuthTestEnv(t *testing.T, verifier services.IdentityVerifier) (oauthTestEnv, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens, err := services.NewTokenService(testSecret, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	oauthService := services.NewOAuthService(userRepo, tokens, "http://localhost:5173/oauth/redirect")
	handler := NewOAuthHandler(oauthService, verifier)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/oauth/callback/github", handler.Callback)

	return oauthTestEnv{db: db, tokens: tokens}, r
}

func TestOAuthHandler_Callback(t *testing.T) {
	env, r := setupOAuthTestEnv(t, stubVerifier{
		identity: services.ExternalIdentity{
			Provider:   constants.ProviderGitHub,
			ExternalID: "12345",
			Email:      "alice@example.com",
			Name:       "Alice Smith",
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/callback/github?code=authcode", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/oauth/redirect", location.Path)

	token := location.Query().Get("token")
	require.NotEmpty(t, token)

	claims, err := env.tokens.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Subject)
}

func TestOAuthHandler_Callback_MissingCode(t *testing.T) {
	_, r := setupOAuthTestEnv(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/callback/github", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOAuthHandler_Callback_VerifierFailure(t *testing.T) {
	_, r := setupOAuthTestEnv(t, stubVerifier{err: errors.New("provider unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/callback/github?code=authcode", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.NotEmpty(t, location.Query().Get("error"))
}

func TestOAuthHandler_Callback_MissingClaims(t *testing.T) {
	_, r := setupOAuthTestEnv(t, stubVerifier{
		identity: services.ExternalIdentity{
			Provider:   constants.ProviderGitHub,
			ExternalID: "12345",
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/callback/github?code=authcode", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.NotEmpty(t, location.Query().Get("error"))
}

func TestOAuthHandler_Callback_ProviderError(t *testing.T) {
	_, r := setupOAuthTestEnv(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/callback/github?error=access_denied", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "access_denied", location.Query().Get("error"))
}
