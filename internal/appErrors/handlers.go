package appErrors

import (
	"net/http"

	"ewaste_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes an AppError to the gin response. 5xx causes are
// logged with full detail server-side and surfaced as a generic body.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.Error("server error",
			"code", err.Code,
			"path", c.Request.URL.Path,
			"error", err.Error(),
		)
		generic := New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
		c.JSON(generic.HTTPCode, ErrorResponse{Error: generic})
		return
	}

	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleServiceError maps any error coming out of a service call:
// AppErrors pass through, anything else is an internal error.
func HandleServiceError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		HandleError(c, appErr)
		return
	}
	HandleError(c, InternalError(err))
}
