package app

import (
	"context"
	"fmt"

	"ewaste_backend/internal/auth"
	"ewaste_backend/internal/config"
	"ewaste_backend/internal/email"
	"ewaste_backend/internal/handlers"
	"ewaste_backend/internal/logger"
	"ewaste_backend/internal/middleware"
	"ewaste_backend/internal/models"
	"ewaste_backend/internal/repositories"
	"ewaste_backend/internal/routes"
	"ewaste_backend/internal/services"
	"ewaste_backend/internal/storage"
	"ewaste_backend/internal/validator"
	"ewaste_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.UserDocument{},
		&models.Personnel{},
		&models.CollectionRequest{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx := context.Background()
	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and returns a ready
// gin engine. Background workers are started on ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	userRepo := repositories.NewUserRepository(gormDB)
	documentRepo := repositories.NewDocumentRepository(gormDB)
	personnelRepo := repositories.NewPersonnelRepository(gormDB)
	collectionRepo := repositories.NewCollectionRepository(gormDB)

	notifier := buildNotifier(ctx, cfg)

	otpService := services.NewOtpService(userRepo, notifier)
	userService := services.NewUserService(userRepo, documentRepo, collectionRepo, otpService, notifier, storageInstance)
	authService := services.NewAuthService(userRepo, notifier)
	personnelService := services.NewPersonnelService(personnelRepo, userRepo, notifier)
	collectionService := services.NewCollectionService(collectionRepo, userRepo, personnelRepo, notifier, storageInstance)

	cleanup := workers.NewCleanupWorker(userRepo)
	cleanup.Start(ctx)

	v := validator.New()
	appHandlers := &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(v, authService, userService, otpService),
		UserHandler:      handlers.NewUserHandler(v, userService, collectionService),
		AdminHandler:     handlers.NewAdminHandler(v, userService, personnelService, collectionService),
		PersonnelHandler: handlers.NewPersonnelHandler(v, collectionService),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	// Local storage serves its files straight from disk; S3/R2 serve
	// through their own public URLs.
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		ginRouter.Static("/uploads", cfg.Storage.BasePath)
	}

	return ginRouter
}

// buildNotifier wires SMTP delivery behind the async dispatcher. With
// no SMTP host configured every notification is dropped, which keeps
// local development working without a mail server.
func buildNotifier(ctx context.Context, cfg *config.Config) email.Notifier {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, email notifications disabled")
		return email.NoopNotifier{}
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}

	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to parse email templates", "error", err)
	}

	dispatcher := workers.NewMailDispatcher(provider)
	dispatcher.Start(ctx)

	return email.NewTemplateNotifier(templates, dispatcher)
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.MaxMultipartMemory = 8 << 20

	return router
}

// seedFirstAdmin guarantees one ADMIN account exists so the approval
// workflow can start on a fresh database. Idempotent.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin credentials not configured, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("roles LIKE ?", "%"+string(models.RoleAdmin)+"%").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	name := cfg.Admin.FullName
	if name == "" {
		name = "Administrator"
	}

	admin := &models.User{
		FullName:     name,
		Email:        cfg.Admin.Email,
		Username:     cfg.Admin.Email,
		PasswordHash: hash,
		Status:       models.UserStatusVerified,
		Roles:        models.RoleSet{models.RoleAdmin},
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded first admin user", "email", cfg.Admin.Email)
	return nil
}
