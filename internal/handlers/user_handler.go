package handlers

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"ewaste_backend/internal/appErrors"
	"ewaste_backend/internal/config"
	"ewaste_backend/internal/middleware"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/services"
	"ewaste_backend/internal/services/dto"
	"ewaste_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated self-service surface: profile,
// proof documents, and the resident's own pickup requests.
type UserHandler struct {
	*BaseHandler
	userService       services.UserService
	collectionService services.CollectionService
}

func NewUserHandler(
	v *validator.Validator,
	userService services.UserService,
	collectionService services.CollectionService,
) *UserHandler {
	return &UserHandler{
		BaseHandler:       NewBaseHandler(v),
		userService:       userService,
		collectionService: collectionService,
	}
}

// GetProfile returns the caller's own account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(middleware.GetPrincipal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.UserSummaryFrom(user)})
}

// UpdateProfile mutates the non-identity fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(middleware.GetPrincipal(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.UserSummaryFrom(user)})
}

// UpdateIdentity changes the login email (and mirrored username)
// after uniqueness is re-checked. The session token keeps carrying the
// old email, so the client must re-login after a successful change.
func (h *UserHandler) UpdateIdentity(c *gin.Context) {
	var req dto.UpdateIdentityRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateIdentity(middleware.GetPrincipal(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.UserSummaryFrom(user)})
}

// UploadProof accepts an identity or address proof file.
func (h *UserHandler) UploadProof(c *gin.Context) {
	docType := models.DocumentType(c.PostForm("doc_type"))
	if docType != models.DocumentTypeIDProof && docType != models.DocumentTypeAddressProof {
		appErrors.HandleError(c, appErrors.NewBadRequestError("doc_type must be ID_PROOF or ADDRESS_PROOF"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("file is required"))
		return
	}

	uploadCfg := config.GetConfig().Upload
	if fileHeader.Size > uploadCfg.MaxSize {
		appErrors.HandleError(c, appErrors.NewBadRequestError(
			fmt.Sprintf("file exceeds the %d byte limit", uploadCfg.MaxSize)))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if len(uploadCfg.AllowedTypes) > 0 && !slices.Contains(uploadCfg.AllowedTypes, contentType) {
		appErrors.HandleError(c, appErrors.NewBadRequestError("unsupported file type: "+contentType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	doc, err := h.userService.UploadProof(
		c.Request.Context(),
		middleware.GetPrincipal(c),
		docType,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

// CreatePickup files a new collection request, optionally with a
// device photo attached as multipart "image".
func (h *UserHandler) CreatePickup(c *gin.Context) {
	var req dto.CreateCollectionRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	var (
		imageName, imageType string
		image                io.Reader
	)
	if fileHeader, err := c.FormFile("image"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		defer f.Close()
		image = f
		imageName = fileHeader.Filename
		imageType = fileHeader.Header.Get("Content-Type")
	}

	request, err := h.collectionService.Create(
		c.Request.Context(),
		middleware.GetPrincipal(c),
		&req,
		imageName, imageType, image,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// ListMyPickups returns the caller's requests, newest first.
func (h *UserHandler) ListMyPickups(c *gin.Context) {
	requests, err := h.collectionService.ListMine(middleware.GetPrincipal(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
