package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuthService serves canned responses so the handler layer can be
// tested without the repository stack.
type stubAuthService struct {
	loginResp *dto.LoginResponse
	loginErr  error
	resetErr  error
}

func (s *stubAuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	return s.resetErr
}

func (s *stubAuthService) ForgotPassword(emailAddr, returnURLBase string) error {
	return nil
}

func (s *stubAuthService) ResetPasswordWithToken(req *dto.ResetWithTokenRequest) error {
	return s.resetErr
}

func authRouter(svc *stubAuthService) *gin.Engine {
	h := NewAuthHandler(validator.New(), svc, nil, nil)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/reset-password", h.ResetPassword)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	t.Parallel()
	r := authRouter(&stubAuthService{
		loginResp: &dto.LoginResponse{
			Success:           true,
			Message:           "Login successful",
			MustResetPassword: true,
			Role:              models.RoleUser,
			Token:             "jwt-token",
		},
	})

	w := postJSON(r, "/auth/login", gin.H{"username": "ravi@example.com", "password": "secret12"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.MustResetPassword)
	assert.Equal(t, "jwt-token", resp.Token)
}

func TestLoginHandler_FailureIsStill200(t *testing.T) {
	t.Parallel()
	r := authRouter(&stubAuthService{
		loginResp: &dto.LoginResponse{Success: false, Message: "Invalid username or password"},
	})

	w := postJSON(r, "/auth/login", gin.H{"username": "ghost", "password": "wrong"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	t.Parallel()
	r := authRouter(&stubAuthService{})

	w := postJSON(r, "/auth/login", gin.H{"username": "ravi@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")
}

func TestResetPasswordHandler_StateError(t *testing.T) {
	t.Parallel()
	r := authRouter(&stubAuthService{resetErr: appErrors.ErrResetNotRequired})

	w := postJSON(r, "/auth/reset-password", gin.H{
		"username":      "ravi@example.com",
		"temp_password": "abcd1234",
		"new_password":  "brand-new-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), string(appErrors.CodeResetNotRequired))
}

func TestResetPasswordHandler_ShortPasswordRejectedBeforeService(t *testing.T) {
	t.Parallel()
	r := authRouter(&stubAuthService{})

	w := postJSON(r, "/auth/reset-password", gin.H{
		"username":      "ravi@example.com",
		"temp_password": "abcd1234",
		"new_password":  "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "new_password")
}
