package services

import (
	"time"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
)

const otpTTL = 5 * time.Minute

// OtpService issues and checks the email-verification codes.
type OtpService interface {
	// Issue generates a fresh OTP for the email and mails it out. When
	// no account exists yet a shell PENDING record is created to hold
	// the code (the registration form verifies the email first).
	Issue(emailAddr string) error

	// Verify reports whether the code matches and has not expired. It
	// never clears the OTP: consumption belongs to the state
	// transition that follows (VerifyEmail), so a probe here must not
	// invalidate it.
	Verify(emailAddr, code string) bool
}

type OtpServiceImpl struct {
	userRepo repositories.UserRepository
	notifier email.Notifier
}

func NewOtpService(userRepo repositories.UserRepository, notifier email.Notifier) OtpService {
	return &OtpServiceImpl{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *OtpServiceImpl) Issue(emailAddr string) error {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if !appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.InternalError(err)
		}
		// Upsert-by-email: hold the OTP on a shell account until the
		// registration completes. The cleanup worker purges shells
		// whose registration is abandoned.
		user = &models.User{
			Email:    emailAddr,
			Username: emailAddr,
			Status:   models.UserStatusPending,
		}
		if err := s.userRepo.Create(user); err != nil {
			return appErrors.InternalError(err)
		}
	}

	code, err := auth.GenerateOtp()
	if err != nil {
		return appErrors.InternalError(err)
	}

	// Overwrites any previous OTP for this email.
	user.SetOtp(code, time.Now().Add(otpTTL))
	if err := s.userRepo.Save(user); err != nil {
		return appErrors.InternalError(err)
	}

	s.notifier.SendOtp(user.Email, code)
	return nil
}

func (s *OtpServiceImpl) Verify(emailAddr, code string) bool {
	user, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		return false
	}

	if user.Otp == "" || user.OtpExpiry == nil {
		return false
	}

	if time.Now().After(*user.OtpExpiry) {
		return false
	}

	return user.Otp == code
}
