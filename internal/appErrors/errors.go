package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a machine-usable error class.
type ErrorCode string

// AppError is the application error carried from services to the HTTP
// boundary. HTTPCode and the wrapped cause never leave the server.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets sentinel AppErrors match wrapped copies of themselves, so
// callers can use errors.Is against the predeclared values below.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors
var (
	// Authentication. The credentials message is deliberately generic so
	// callers cannot tell an unknown identifier from a wrong password.
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid username or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Accounts
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already registered", http.StatusConflict)
	ErrUserNotVerified    = New(CodeUserNotVerified, "Account not verified. Please check your email for verification code.", http.StatusForbidden)
	ErrUserSuspended      = New(CodeUserSuspended, "Account suspended", http.StatusForbidden)
	ErrUserRejected       = New(CodeUserRejected, "Account registration was rejected", http.StatusForbidden)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)

	// Email verification
	ErrInvalidOtp = New(CodeInvalidOtp, "Invalid OTP", http.StatusBadRequest)
	ErrOtpExpired = New(CodeOtpExpired, "OTP expired", http.StatusBadRequest)

	// Password recovery
	ErrResetNotRequired  = New(CodeResetNotRequired, "Password reset not required", http.StatusBadRequest)
	ErrInvalidResetToken = New(CodeInvalidResetToken, "Invalid or expired reset token", http.StatusBadRequest)

	// Pickups and personnel
	ErrRequestNotFound      = New(CodeRequestNotFound, "Pickup request not found", http.StatusNotFound)
	ErrPersonnelNotFound    = New(CodePersonnelNotFound, "Personnel not found", http.StatusNotFound)
	ErrInvalidRequestStatus = New(CodeInvalidRequestStatus, "Invalid request status", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helpers

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}
