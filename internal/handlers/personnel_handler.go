package handlers

import (
	"net/http"

	"ewaste_backend/internal/middleware"
	"ewaste_backend/internal/services"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// PersonnelHandler serves the field-staff surface: assigned pickups
// and status reporting.
type PersonnelHandler struct {
	*BaseHandler
	collectionService services.CollectionService
}

func NewPersonnelHandler(v *validator.Validator, collectionService services.CollectionService) *PersonnelHandler {
	return &PersonnelHandler{
		BaseHandler:       NewBaseHandler(v),
		collectionService: collectionService,
	}
}

// ListAssigned returns the pickups assigned to the calling staff
// member.
func (h *PersonnelHandler) ListAssigned(c *gin.Context) {
	requests, err := h.collectionService.ListAssigned(middleware.GetPrincipal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateStatus advances an assigned pickup (in progress, completed,
// rejected with a reason).
func (h *PersonnelHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateRequestStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.collectionService.UpdateStatus(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}
