package api

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents an authentication request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyTokenRequest represents an out-of-band token check
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// AuthResponse is returned on successful signup and login
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

// TokenUser carries the identity decoded from a verified token
type TokenUser struct {
	UserID string `json:"userId"`
}

// VerifyTokenResponse is returned when a token passes verification
type VerifyTokenResponse struct {
	Success bool      `json:"success"`
	User    TokenUser `json:"user"`
}

// ErrorResponse represents a failed auth-surface call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
