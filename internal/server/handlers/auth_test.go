package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/crypto"
	"stockroom/internal/models"
	"stockroom/internal/server/auth"
	"stockroom/internal/server/storage"
	"stockroom/pkg/api"
)

// mockUserStorage is a map-backed UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // email -> User
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func newTestAuthHandler(users *mockUserStorage) (*AuthHandler, *auth.Service) {
	tokens := auth.NewService([]byte("test-secret-key"), time.Hour)
	return NewAuthHandler(setupTestLogger(), users, tokens, bcrypt.MinCost), tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	users := newMockUserStorage()
	h, tokens := newTestAuthHandler(users)

	w := postJSON(t, h.Signup, "/api/signup", api.SignupRequest{
		Email:    "a@x.com",
		Password: "pw1",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)

	// Token verifies and encodes the stored user's id
	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, users.users["a@x.com"].ID, claims.UserID)

	// Stored hash is not the raw password
	assert.NotEqual(t, "pw1", users.users["a@x.com"].PasswordHash)
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		req  api.SignupRequest
	}{
		{name: "missing email", req: api.SignupRequest{Password: "pw1"}},
		{name: "missing password", req: api.SignupRequest{Email: "a@x.com"}},
		{name: "both missing", req: api.SignupRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAuthHandler(newMockUserStorage())

			w := postJSON(t, h.Signup, "/api/signup", tt.req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
		})
	}
}

func TestAuthHandler_Signup_Conflict(t *testing.T) {
	users := newMockUserStorage()
	h, _ := newTestAuthHandler(users)

	w := postJSON(t, h.Signup, "/api/signup", api.SignupRequest{Email: "a@x.com", Password: "pw1"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Signup, "/api/signup", api.SignupRequest{Email: "a@x.com", Password: "pw2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists", resp.Message)

	// Exactly one record for that email
	assert.Len(t, users.users, 1)
}

func TestAuthHandler_Signup_StoreError(t *testing.T) {
	users := newMockUserStorage()
	users.createError = errors.New("disk on fire")
	h, _ := newTestAuthHandler(users)

	w := postJSON(t, h.Signup, "/api/signup", api.SignupRequest{Email: "a@x.com", Password: "pw1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Store detail must not leak to the caller
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	users := newMockUserStorage()
	h, tokens := newTestAuthHandler(users)

	hash, err := crypto.HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	users.users["a@x.com"] = &models.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	w := postJSON(t, h.Login, "/api/login", api.LoginRequest{Email: "a@x.com", Password: "pw1"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	users := newMockUserStorage()
	h, _ := newTestAuthHandler(users)

	hash, err := crypto.HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	users.users["a@x.com"] = &models.User{ID: "user-1", Email: "a@x.com", PasswordHash: hash}

	wrongPassword := postJSON(t, h.Login, "/api/login", api.LoginRequest{Email: "a@x.com", Password: "wrong"})
	unknownEmail := postJSON(t, h.Login, "/api/login", api.LoginRequest{Email: "b@x.com", Password: "pw1"})

	// Wrong password and unknown email must be indistinguishable
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h, _ := newTestAuthHandler(newMockUserStorage())

	w := postJSON(t, h.Login, "/api/login", api.LoginRequest{Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_StoreError(t *testing.T) {
	users := newMockUserStorage()
	users.getError = errors.New("connection reset")
	h, _ := newTestAuthHandler(users)

	w := postJSON(t, h.Login, "/api/login", api.LoginRequest{Email: "a@x.com", Password: "pw1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	h, tokens := newTestAuthHandler(newMockUserStorage())

	token, err := tokens.Issue("user-42")
	require.NoError(t, err)

	w := postJSON(t, h.VerifyToken, "/api/verify-token", api.VerifyTokenRequest{Token: token})

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.VerifyTokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user-42", resp.User.UserID)
}

func TestAuthHandler_VerifyToken_Invalid(t *testing.T) {
	h, _ := newTestAuthHandler(newMockUserStorage())

	w := postJSON(t, h.VerifyToken, "/api/verify-token", api.VerifyTokenRequest{Token: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_VerifyToken_Expired(t *testing.T) {
	users := newMockUserStorage()
	h, _ := newTestAuthHandler(users)

	expired := auth.NewService([]byte("test-secret-key"), -time.Minute)
	token, err := expired.Issue("user-42")
	require.NoError(t, err)

	w := postJSON(t, h.VerifyToken, "/api/verify-token", api.VerifyTokenRequest{Token: token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_VerifyToken_Missing(t *testing.T) {
	h, _ := newTestAuthHandler(newMockUserStorage())

	w := postJSON(t, h.VerifyToken, "/api/verify-token", api.VerifyTokenRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
