package routes

import (
	"net/http"

	"ewaste_backend/internal/handlers"
	"ewaste_backend/internal/middleware"
	"ewaste_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP surface. Access tiers:
//
//	/api/v1/auth/**       public
//	/api/v1/admin/**      ROLE_ADMIN
//	/api/v1/user/**       ROLE_USER or ROLE_ADMIN
//	/api/v1/personnel/**  ROLE_PERSONNEL or ROLE_ADMIN
//	everything else       any authenticated principal
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", appHandlers.AuthHandler.Register)
		auth.POST("/send-otp", appHandlers.AuthHandler.SendOtp)
		auth.POST("/verify-otp", appHandlers.AuthHandler.VerifyOtp)
		auth.POST("/verify-email", appHandlers.AuthHandler.VerifyEmail)
		auth.POST("/login", appHandlers.AuthHandler.Login)
		auth.POST("/reset-password", appHandlers.AuthHandler.ResetPassword)
		auth.POST("/forgot-password", appHandlers.AuthHandler.ForgotPassword)
		auth.POST("/reset-password-token", appHandlers.AuthHandler.ResetWithToken)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", appHandlers.AdminHandler.ListUsers)
		admin.PUT("/users/:id/approve", appHandlers.AdminHandler.ApproveUser)
		admin.PUT("/users/:id/status", appHandlers.AdminHandler.UpdateUserStatus)
		admin.DELETE("/users/:id", appHandlers.AdminHandler.DeleteUser)

		admin.GET("/personnel", appHandlers.AdminHandler.ListPersonnel)
		admin.POST("/personnel", appHandlers.AdminHandler.AddPersonnel)
		admin.PUT("/personnel/:id/deactivate", appHandlers.AdminHandler.DeactivatePersonnel)

		admin.GET("/requests", appHandlers.AdminHandler.ListAllPickups)
		admin.PUT("/requests/:id/schedule", appHandlers.AdminHandler.SchedulePickup)
	}

	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleUser, models.RoleAdmin))
	{
		user.GET("/profile", appHandlers.UserHandler.GetProfile)
		user.PUT("/profile", appHandlers.UserHandler.UpdateProfile)
		user.PUT("/identity", appHandlers.UserHandler.UpdateIdentity)
		user.POST("/documents", appHandlers.UserHandler.UploadProof)

		user.POST("/requests", appHandlers.UserHandler.CreatePickup)
		user.GET("/requests", appHandlers.UserHandler.ListMyPickups)
	}

	personnel := api.Group("/personnel")
	personnel.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RolePersonnel, models.RoleAdmin))
	{
		personnel.GET("/requests", appHandlers.PersonnelHandler.ListAssigned)
		personnel.PUT("/requests/:id/status", appHandlers.PersonnelHandler.UpdateStatus)
	}
}
