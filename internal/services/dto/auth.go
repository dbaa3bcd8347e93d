package dto

import "ewaste_backend/internal/models"

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success           bool            `json:"success"`
	Message           string          `json:"message"`
	MustResetPassword bool            `json:"must_reset_password"`
	Role              models.UserRole `json:"role,omitempty"`
	Token             string          `json:"token,omitempty"`
}

// ResetPasswordRequest is the temp-password rotation performed right
// after verification or admin approval.
type ResetPasswordRequest struct {
	Username     string `json:"username" validate:"required"`
	TempPassword string `json:"temp_password" validate:"required"`
	NewPassword  string `json:"new_password" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetWithTokenRequest finalizes the emailed-link recovery flow.
type ResetWithTokenRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
