package handlers

import (
	"net/http"

	"ewaste_backend/internal/models"
	"ewaste_backend/internal/services"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin console: account review, status
// management, the personnel roster and pickup scheduling.
type AdminHandler struct {
	*BaseHandler
	userService       services.UserService
	personnelService  services.PersonnelService
	collectionService services.CollectionService
}

func NewAdminHandler(
	v *validator.Validator,
	userService services.UserService,
	personnelService services.PersonnelService,
	collectionService services.CollectionService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:       NewBaseHandler(v),
		userService:       userService,
		personnelService:  personnelService,
		collectionService: collectionService,
	}
}

// ListUsers returns every registered account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ApproveUser settles a pending registration. approve=false rejects
// it without issuing credentials.
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	var req dto.ApproveUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.Approve(c.Param("id"), req.Approve)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	msg := "User rejected"
	if req.Approve {
		msg = "User approved. Temporary credentials have been sent."
	}
	c.JSON(http.StatusOK, gin.H{
		"message": msg,
		"user":    dto.UserSummaryFrom(user),
	})
}

// UpdateUserStatus sets an account status directly (suspend, restore).
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.SetStatus(c.Param("id"), models.UserStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// DeleteUser removes an account together with its documents and
// pickup requests.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListPersonnel returns the active roster.
func (h *AdminHandler) ListPersonnel(c *gin.Context) {
	personnel, err := h.personnelService.ListActive()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"personnel": personnel})
}

// AddPersonnel onboards a staff member and provisions their login.
func (h *AdminHandler) AddPersonnel(c *gin.Context) {
	var req dto.AddPersonnelRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	p, err := h.personnelService.Add(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"personnel": p})
}

// DeactivatePersonnel disables the roster entry and suspends the
// linked account.
func (h *AdminHandler) DeactivatePersonnel(c *gin.Context) {
	if err := h.personnelService.Deactivate(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Personnel deactivated"})
}

// ListAllPickups returns every pickup request in the system.
func (h *AdminHandler) ListAllPickups(c *gin.Context) {
	requests, err := h.collectionService.ListAll()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// SchedulePickup assigns personnel and a pickup slot to a request.
func (h *AdminHandler) SchedulePickup(c *gin.Context) {
	var req dto.ScheduleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.collectionService.Schedule(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pickup scheduled",
		"request": request,
	})
}
