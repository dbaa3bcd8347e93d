package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Accounts
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserNotVerified    ErrorCode = "USER_NOT_VERIFIED"
	CodeUserSuspended      ErrorCode = "USER_SUSPENDED"
	CodeUserRejected       ErrorCode = "USER_REJECTED"
	CodeWeakPassword       ErrorCode = "WEAK_PASSWORD"

	// Email verification
	CodeInvalidOtp ErrorCode = "INVALID_OTP"
	CodeOtpExpired ErrorCode = "OTP_EXPIRED"

	// Password recovery
	CodeResetNotRequired  ErrorCode = "RESET_NOT_REQUIRED"
	CodeInvalidResetToken ErrorCode = "INVALID_RESET_TOKEN"

	// Pickups and personnel
	CodeRequestNotFound      ErrorCode = "REQUEST_NOT_FOUND"
	CodePersonnelNotFound    ErrorCode = "PERSONNEL_NOT_FOUND"
	CodeInvalidRequestStatus ErrorCode = "INVALID_REQUEST_STATUS"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
)
