package handlers

import (
	"net/http"
	"strings"

	"ewaste_backend/internal/config"
	"ewaste_backend/internal/services"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the public authentication surface: registration,
// email verification, login and both password-recovery flows.
type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	userService services.UserService
	otpService  services.OtpService
}

func NewAuthHandler(
	v *validator.Validator,
	authService services.AuthService,
	userService services.UserService,
	otpService services.OtpService,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(v),
		authService: authService,
		userService: userService,
		otpService:  otpService,
	}
}

// Register creates a PENDING account and triggers the OTP mail.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration received. A verification code has been sent to your email.",
		"user":    dto.UserSummaryFrom(user),
	})
}

// SendOtp issues (or reissues) a verification code for the email.
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req dto.SendOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.otpService.Issue(req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

// VerifyOtp is a non-consuming probe: it reports validity without
// advancing the account. The UI uses it for inline feedback before the
// registration form is submitted.
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VerifyOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	valid := h.otpService.Verify(req.Email, req.Otp)
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// VerifyEmail consumes the OTP and moves the account to VERIFIED,
// mailing out the one-time temporary password.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.VerifyEmail(req.Email, req.Otp)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified. Temporary login credentials have been sent to your email.",
		"user":    dto.UserSummaryFrom(user),
	})
}

// Login authenticates by username or email. Failed attempts get a
// 200 with success=false and a generic message rather than an error
// body, so the client handles one response shape.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetPassword rotates the temporary password into a user-chosen one.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully. Please login with your new password."})
}

// ForgotPassword stores a reset token and mails the recovery link.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	base := strings.TrimRight(config.GetConfig().Frontend.BaseURL, "/")
	if err := h.authService.ForgotPassword(req.Email, base); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset link sent to your email"})
}

// ResetWithToken finalizes the emailed-link recovery flow.
func (h *AuthHandler) ResetWithToken(c *gin.Context) {
	var req dto.ResetWithTokenRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPasswordWithToken(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset. Please login with your new password."})
}
