package dto

import "time"

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	FirstName       string `json:"nombre"`
	LastName        string `json:"apellido"`
	NationalID      string `json:"rut"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationStatusResponse reports the email-verified flag.
type VerificationStatusResponse struct {
	AccountID     string `json:"account_id"`
	EmailVerified bool   `json:"email_verified"`
}
