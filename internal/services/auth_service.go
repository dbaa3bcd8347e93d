package services

import (
	"fmt"
	"time"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
	"ewaste_backend/internal/services/dto"
)

const resetTokenTTL = 30 * time.Minute

// AuthService validates credentials, gates on account state and issues
// session tokens. It also owns the three password-recovery paths.
type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	ResetPassword(req *dto.ResetPasswordRequest) error
	ForgotPassword(emailAddr, returnURLBase string) error
	ResetPasswordWithToken(req *dto.ResetWithTokenRequest) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	notifier email.Notifier
}

func NewAuthService(userRepo repositories.UserRepository, notifier email.Notifier) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// resolve tries the identifier as a username first, then as an email.
func (s *AuthServiceImpl) resolve(identifier string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(identifier)
	if err == nil {
		return user, nil
	}
	if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}
	return s.userRepo.FindByEmail(identifier)
}

// Login returns a response rather than an error for authentication
// failures, so the two failure classes stay distinguishable: bad
// credentials get a deliberately generic message, a non-VERIFIED
// account gets a state message. Neither case carries a token.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	failed := &dto.LoginResponse{
		Success: false,
		Message: "Invalid username or password",
	}

	user, err := s.resolve(req.Username)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return failed, nil
		}
		return nil, appErrors.InternalError(err)
	}

	if !user.HasPassword() || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return failed, nil
	}

	if user.Status != models.UserStatusVerified {
		return &dto.LoginResponse{
			Success: false,
			Message: statusMessage(user.Status),
		}, nil
	}

	role := user.Roles.Primary()
	token, err := auth.GenerateToken(user.Email, role)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Success:           true,
		Message:           "Login successful",
		MustResetPassword: user.MustResetPassword,
		Role:              role,
		Token:             token,
	}, nil
}

func statusMessage(status models.UserStatus) string {
	switch status {
	case models.UserStatusSuspended:
		return appErrors.ErrUserSuspended.Message
	case models.UserStatusRejected:
		return appErrors.ErrUserRejected.Message
	default:
		return appErrors.ErrUserNotVerified.Message
	}
}

// ResetPassword rotates the one-time temporary password. Valid exactly
// once, right after verification or approval.
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if !user.MustResetPassword {
		return appErrors.ErrResetNotRequired
	}

	if !auth.CheckPasswordHash(req.TempPassword, user.PasswordHash) {
		return appErrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.MustResetPassword = false

	if err := s.userRepo.Save(user); err != nil {
		return appErrors.InternalError(err)
	}

	s.notifier.SendPasswordChanged(user.Email)
	return nil
}

// ForgotPassword stores a single-use reset token with a 30-minute
// expiry and mails the recovery link. A newer request replaces any
// outstanding token.
func (s *AuthServiceImpl) ForgotPassword(emailAddr, returnURLBase string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	token := auth.GenerateResetToken()
	user.SetResetToken(token, time.Now().Add(resetTokenTTL))

	if err := s.userRepo.Save(user); err != nil {
		return appErrors.InternalError(err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", returnURLBase, token, user.Email)
	s.notifier.SendPasswordResetLink(user.Email, link)
	return nil
}

// ResetPasswordWithToken finalizes the emailed-link recovery: the
// token pair is cleared on success, consuming the link.
func (s *AuthServiceImpl) ResetPasswordWithToken(req *dto.ResetWithTokenRequest) error {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	if user.ResetToken == "" || user.ResetToken != req.Token ||
		user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return appErrors.ErrInvalidResetToken
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ClearResetToken()
	user.MustResetPassword = false

	if err := s.userRepo.Save(user); err != nil {
		return appErrors.InternalError(err)
	}

	s.notifier.SendPasswordChanged(user.Email)
	return nil
}
