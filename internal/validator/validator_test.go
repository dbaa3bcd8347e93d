package validator

import (
	"testing"

	"ewaste_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RegisterRequest(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.RegisterRequest{
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
	}))

	err := v.Validate(&dto.RegisterRequest{Email: "not-an-email"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// Field names come from the json tags, not the Go names.
	assert.Contains(t, vErr.Errors, "full_name")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "phone")
	assert.Equal(t, "must be a valid email address", vErr.Errors["email"])
}

func TestValidate_OtpShape(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.VerifyEmailRequest{
		Email: "ravi@example.com",
		Otp:   "123456",
	}))

	err := v.Validate(&dto.VerifyEmailRequest{Email: "ravi@example.com", Otp: "12345"})
	require.Error(t, err)

	err = v.Validate(&dto.VerifyEmailRequest{Email: "ravi@example.com", Otp: "12345a"})
	require.Error(t, err)
}

func TestValidate_NewPasswordLength(t *testing.T) {
	t.Parallel()
	v := New()

	err := v.Validate(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: "abcd1234",
		NewPassword:  "short",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "must be at least 8 characters", vErr.Errors["new_password"])
}

func TestValidate_UserStatusTag(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateStatusRequest{Status: "SUSPENDED"}))
	assert.Error(t, v.Validate(&dto.UpdateStatusRequest{Status: "BANANAS"}))
	// Empty falls to 'required', not to the enum rule.
	err := v.Validate(&dto.UpdateStatusRequest{})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Equal(t, "is required", vErr.Errors["status"])
}

func TestValidate_RequestStatusTag(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&dto.UpdateRequestStatusRequest{Status: "COMPLETED"}))
	assert.NoError(t, v.Validate(&dto.UpdateRequestStatusRequest{Status: "REJECTED", Reason: "n/a"}))
	assert.Error(t, v.Validate(&dto.UpdateRequestStatusRequest{Status: "done"}))
}
