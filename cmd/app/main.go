package main

import (
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cms-extensions/cmd/internal/controller"
	"cms-extensions/internal/config"
	"cms-extensions/internal/db"
	"cms-extensions/internal/model"
	"cms-extensions/internal/repository"
	"cms-extensions/internal/service"
	"cms-extensions/pkg/middleware"
	"cms-extensions/utilities"
)

func main() {
	printStartUpBanner()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utilities.SetupLogging(cfg.Logging); err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer utilities.CloseLogging()
	utilities.SetDebug(cfg.RequestDump)
	utilities.ConfigureTokens(cfg.Authentication.JWTSecret, cfg.Authentication.SessionTimeout)

	// Create services.
	articleService := service.NewArticleService(repository.NewArticleRepository())
	authService := service.NewAuthService(cfg.Authentication)
	defer service.InitArticleEventListeners()()

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "ETag", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestDumpMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// The database is opened on the first request.
	gate := middleware.NewStartupGate(
		func() error {
			if err := db.InitDBFromConfig(cfg); err != nil {
				return err
			}
			if err := db.GetDB().AutoMigrate(&model.Article{}); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			return seedArticles(articleService)
		},
		func(r *gin.Engine) error {
			controller.RegisterRoutes(r, articleService, authService, cfg.Authentication.EnableTokenAuth)
			return nil
		},
	)
	gate.Install(r)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	utilities.Info("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		utilities.Error("server stopped: %v", err)
	}
	if err := db.Close(); err != nil {
		utilities.Warn("closing database: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("CMS", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("CMS EXTENSIONS API (v%s)\n\n", "1.0.0")
}
