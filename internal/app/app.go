package app

import (
	"fmt"
	"time"

	"jobtrack_backend/database"
	"jobtrack_backend/internal/config"
	"jobtrack_backend/internal/email"
	"jobtrack_backend/internal/handlers"
	"jobtrack_backend/internal/logger"
	"jobtrack_backend/internal/middleware"
	"jobtrack_backend/internal/repositories"
	"jobtrack_backend/internal/routes"
	"jobtrack_backend/internal/services"
	"jobtrack_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
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

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine: repositories, services, handlers,
// the websocket hub and all routes. Tests call it directly with their own DB.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	emailProvider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   time.Duration(cfg.Email.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	notifier := services.NewNotifier(emailProvider, wsManager)
	authService := services.NewAuthService(userRepo, notifier)
	jobService := services.NewJobService(jobRepo, userRepo, notifier)

	appHandlers := handlers.NewAppHandlers(authService, jobService)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, appHandlers, wsHandler)

	return router
}
