package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-at-least-32-characters"

type authTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
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
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/refresh", handler.Refresh)
	r.POST("/api/auth/logout", handler.Logout)
	r.POST("/api/auth/verify-email", handler.VerifyEmail)
	r.GET("/api/auth/me", middleware.RequireAuth(tokens, userRepo), handler.GetCurrentUser)

	return authTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]string {
	return map[string]string{
		"first_name": "Alice",
		"last_name":  "Smith",
		"email":      "alice@example.com",
		"password":   "supersecret",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", registerPayload())

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice@example.com", response.Email)
	require.Equal(t, "Alice Smith", response.Name)

	// Password material never appears in responses.
	require.NotContains(t, w.Body.String(), "supersecret")
	require.NotContains(t, w.Body.String(), "password_hash")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", registerPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/api/auth/register", registerPayload())
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := registerPayload()
	payload["password"] = "short"
	w := postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	postJSON(t, env.router, "/api/auth/register", registerPayload())

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	require.NotEmpty(t, response.RefreshToken)
	require.NotNil(t, response.User)
	require.Equal(t, "alice@example.com", response.User.Email)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	postJSON(t, env.router, "/api/auth/register", registerPayload())

	wrongPass := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})
	unknownEmail := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Both failures produce the same response body.
	require.Equal(t, wrongPass.Body.String(), unknownEmail.Body.String())
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupAuthTestEnv(t)
	postJSON(t, env.router, "/api/auth/register", registerPayload())

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = postJSON(t, env.router, "/api/auth/refresh", map[string]string{
		"refresh_token": login.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refreshed))
	require.NotEmpty(t, refreshed.Token)
	require.NotEmpty(t, refreshed.RefreshToken)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/refresh", map[string]string{
		"refresh_token": "not-a-token",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTestEnv(t)
	postJSON(t, env.router, "/api/auth/register", registerPayload())

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	var login dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "alice@example.com", response.Email)
}

func TestAuthHandler_Me_RequiresToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_VerifyEmail_NotImplemented(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/verify-email", map[string]string{
		"token": "some-token",
	})
	require.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/logout", map[string]string{
		"refresh_token": "whatever",
	})
	require.Equal(t, http.StatusOK, w.Code)
}
