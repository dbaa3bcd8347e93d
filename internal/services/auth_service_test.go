package services

import (
	"testing"
	"time"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/config"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Token issuance reads the global config; give the tests a fixed
	// secret instead of loading config.yaml.
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-service"
	cfg.JWT.TTL = 24
	config.AppConfig = cfg
}

type authFixture struct {
	*userFixture
	authService AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{userFixture: newUserFixture()}
	f.authService = NewAuthService(f.userRepo, f.notifier)
	return f
}

// registerAndVerify walks a user through register + OTP verification
// and returns the mailed temporary password.
func (f *authFixture) registerAndVerify(t *testing.T, email string) string {
	t.Helper()
	_, err := f.userService.Register(&dto.RegisterRequest{
		FullName: "Ravi Kumar",
		Email:    email,
		Phone:    "9876543210",
	})
	require.NoError(t, err)

	code := f.notifier.last("otp").Code
	_, err = f.userService.VerifyEmail(email, code)
	require.NoError(t, err)

	return f.notifier.last("credentials").Password
}

func TestLogin_UnknownIdentifierIsGeneric(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ghost@example.com", Password: "whatever"})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid username or password", resp.Message)
	assert.Empty(t, resp.Token)
}

func TestLogin_WrongPasswordMatchesUnknownUserMessage(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	f.registerAndVerify(t, "ravi@example.com")

	wrongPass, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: "incorrect"})
	require.NoError(t, err)
	unknown, err := f.authService.Login(&dto.LoginRequest{Username: "ghost@example.com", Password: "incorrect"})
	require.NoError(t, err)

	assert.False(t, wrongPass.Success)
	assert.Equal(t, unknown.Message, wrongPass.Message,
		"wrong password and unknown user must be indistinguishable")
}

func TestLogin_PendingAccountGetsNoToken(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	// A pending account has no password yet, so even the "right"
	// password cannot log in.
	_, err := f.userService.Register(&dto.RegisterRequest{
		FullName: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543210",
	})
	require.NoError(t, err)

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: ""})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
}

func TestLogin_SuspendedAccountReportsState(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	temp := f.registerAndVerify(t, "ravi@example.com")

	user, err := f.userRepo.FindByEmail("ravi@example.com")
	require.NoError(t, err)
	require.NoError(t, f.userService.SetStatus(user.ID, models.UserStatusSuspended))

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: temp})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, appErrors.ErrUserSuspended.Message, resp.Message)
	assert.Empty(t, resp.Token)
}

func TestLogin_RejectedAccountCannotLogin(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	reg, err := f.userService.Register(&dto.RegisterRequest{
		FullName: "Ravi Kumar", Email: "ravi@example.com", Phone: "9876543210",
	})
	require.NoError(t, err)

	// Verify first so a password exists, then reject.
	code := f.notifier.last("otp").Code
	_, err = f.userService.VerifyEmail("ravi@example.com", code)
	require.NoError(t, err)
	temp := f.notifier.last("credentials").Password
	require.NoError(t, f.userService.SetStatus(reg.ID, models.UserStatusRejected))

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: temp})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, appErrors.ErrUserRejected.Message, resp.Message)
}

func TestLogin_SucceedsWithUsernameOrEmail(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	temp := f.registerAndVerify(t, "ravi@example.com")

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: temp})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.True(t, resp.MustResetPassword, "first login happens under the temp password")
	assert.Equal(t, models.RoleUser, resp.Role)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestResetPassword_FullRotation(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	temp := f.registerAndVerify(t, "ravi@example.com")

	err := f.authService.ResetPassword(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: temp,
		NewPassword:  "brand-new-password",
	})
	require.NoError(t, err)

	// The temp password is now dead, the new one works, and the
	// must-reset flag is gone.
	old, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: temp})
	require.NoError(t, err)
	assert.False(t, old.Success)

	fresh, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: "brand-new-password"})
	require.NoError(t, err)
	assert.True(t, fresh.Success)
	assert.False(t, fresh.MustResetPassword)

	assert.Equal(t, 1, f.notifier.count("password_changed"))
}

func TestResetPassword_NotRequired(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	temp := f.registerAndVerify(t, "ravi@example.com")

	require.NoError(t, f.authService.ResetPassword(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: temp,
		NewPassword:  "brand-new-password",
	}))

	// A second rotation attempt is a state error, not a credential
	// error.
	err := f.authService.ResetPassword(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: "brand-new-password",
		NewPassword:  "another-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrResetNotRequired)
}

func TestResetPassword_WrongTempPassword(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	f.registerAndVerify(t, "ravi@example.com")

	err := f.authService.ResetPassword(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: "not-the-temp",
		NewPassword:  "brand-new-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestResetPassword_WeakNewPassword(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	temp := f.registerAndVerify(t, "ravi@example.com")

	err := f.authService.ResetPassword(&dto.ResetPasswordRequest{
		Username:     "ravi@example.com",
		TempPassword: temp,
		NewPassword:  "short",
	})
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)
}

func TestForgotPassword_TokenFlow(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	f.registerAndVerify(t, "ravi@example.com")

	require.NoError(t, f.authService.ForgotPassword("ravi@example.com", "https://app.example.com"))

	link := f.notifier.last("reset_link")
	require.NotNil(t, link)
	assert.Contains(t, link.Link, "https://app.example.com/reset-password?token=")

	user, err := f.userRepo.FindByEmail("ravi@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.ResetToken)
	require.NotNil(t, user.ResetTokenExp)

	require.NoError(t, f.authService.ResetPasswordWithToken(&dto.ResetWithTokenRequest{
		Email:       "ravi@example.com",
		Token:       user.ResetToken,
		NewPassword: "recovered-password",
	}))

	// Token consumed, pair cleared, new password live.
	after, err := f.userRepo.FindByEmail("ravi@example.com")
	require.NoError(t, err)
	assert.Empty(t, after.ResetToken)
	assert.Nil(t, after.ResetTokenExp)
	assert.False(t, after.MustResetPassword)

	resp, err := f.authService.Login(&dto.LoginRequest{Username: "ravi@example.com", Password: "recovered-password"})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// Replaying the consumed token fails.
	err = f.authService.ResetPasswordWithToken(&dto.ResetWithTokenRequest{
		Email:       "ravi@example.com",
		Token:       user.ResetToken,
		NewPassword: "yet-another-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidResetToken)
}

func TestForgotPassword_NewRequestReplacesToken(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	f.registerAndVerify(t, "ravi@example.com")

	require.NoError(t, f.authService.ForgotPassword("ravi@example.com", "https://app.example.com"))
	first, err := f.userRepo.FindByEmail("ravi@example.com")
	require.NoError(t, err)

	require.NoError(t, f.authService.ForgotPassword("ravi@example.com", "https://app.example.com"))

	err = f.authService.ResetPasswordWithToken(&dto.ResetWithTokenRequest{
		Email:       "ravi@example.com",
		Token:       first.ResetToken,
		NewPassword: "recovered-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidResetToken, "the superseded token must be dead")
}

func TestResetPasswordWithToken_Expired(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()
	f.registerAndVerify(t, "ravi@example.com")

	require.NoError(t, f.authService.ForgotPassword("ravi@example.com", "https://app.example.com"))

	user, err := f.userRepo.FindByEmail("ravi@example.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	user.ResetTokenExp = &past
	require.NoError(t, f.userRepo.Save(user))

	err = f.authService.ResetPasswordWithToken(&dto.ResetWithTokenRequest{
		Email:       "ravi@example.com",
		Token:       user.ResetToken,
		NewPassword: "recovered-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidResetToken)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()
	f := newAuthFixture()

	err := f.authService.ForgotPassword("ghost@example.com", "https://app.example.com")
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}
