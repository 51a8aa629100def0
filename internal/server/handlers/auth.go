package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/crypto"
	"stockroom/internal/models"
	"stockroom/internal/server/auth"
	"stockroom/internal/server/storage"
	"stockroom/internal/validation"
	"stockroom/pkg/api"
)

// AuthHandler handles signup, login and token verification
type AuthHandler struct {
	logger     *slog.Logger
	users      storage.UserStorage
	tokens     *auth.Service
	bcryptCost int
}

// NewAuthHandler creates a new handler for the auth routes
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens *auth.Service, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Signup handles POST /api/signup
// Creates an account and returns a fresh token
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		sendError(h.logger, w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCredentials(req.Email, req.Password); err != nil {
		sendError(h.logger, w, "Email and password are required", http.StatusBadRequest)
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "Signup failed due to server error.", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	// Uniqueness is enforced by the store, so two concurrent signups on
	// the same email cannot both get through
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "signup conflict", slog.String("email", req.Email))
			sendError(h.logger, w, "User already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "Signup failed due to server error.", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "Signup failed due to server error.", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user signed up", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Success: true,
		Message: "User created successfully",
		Token:   token,
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login handles POST /api/login
// Unknown email and wrong password produce the same response, so the
// endpoint can't be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "Email and password are required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCredentials(req.Email, req.Password); err != nil {
		sendError(h.logger, w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: unknown email")
			sendError(h.logger, w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "Login failed due to server error.", http.StatusInternalServerError)
		return
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		sendError(h.logger, w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "Login failed due to server error.", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		Success: true,
		Token:   token,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// VerifyToken handles POST /api/verify-token
// Side-effect-free check for out-of-band token validation
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode verify-token request", slog.Any("error", err))
		sendError(h.logger, w, "Token is required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateToken(req.Token); err != nil {
		sendError(h.logger, w, "Token is required", http.StatusBadRequest)
		return
	}

	claims, err := h.tokens.Verify(req.Token)
	if err != nil {
		sendError(h.logger, w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	resp := api.VerifyTokenResponse{
		Success: true,
		User:    api.TokenUser{UserID: claims.UserID},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
