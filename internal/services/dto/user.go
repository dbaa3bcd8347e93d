package dto

import (
	"time"

	"ewaste_backend/internal/models"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

type SendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

type ApproveUserRequest struct {
	Approve bool `json:"approve"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,is-user-status"`
}

// UpdateProfileRequest covers the mutable profile fields. Identity
// fields (email, username) go through UpdateIdentityRequest instead.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address" validate:"max=1000"`
	City     string `json:"city"`
}

// UpdateIdentityRequest additionally allows changing the login
// identity; uniqueness is re-checked before the change lands.
type UpdateIdentityRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address" validate:"max=1000"`
	City     string `json:"city"`
}

// UserSummary is the admin console listing row.
type UserSummary struct {
	ID                string            `json:"id"`
	FullName          string            `json:"full_name"`
	Email             string            `json:"email"`
	Username          string            `json:"username"`
	Phone             string            `json:"phone"`
	City              string            `json:"city"`
	Status            models.UserStatus `json:"status"`
	Roles             models.RoleSet    `json:"roles"`
	MustResetPassword bool              `json:"must_reset_password"`
	CreatedAt         time.Time         `json:"created_at"`
}

func UserSummaryFrom(u *models.User) UserSummary {
	return UserSummary{
		ID:                u.ID,
		FullName:          u.FullName,
		Email:             u.Email,
		Username:          u.Username,
		Phone:             u.Phone,
		City:              u.City,
		Status:            u.Status,
		Roles:             u.Roles,
		MustResetPassword: u.MustResetPassword,
		CreatedAt:         u.CreatedAt,
	}
}
