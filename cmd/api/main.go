package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colchester-plumber-api/config"
	_ "colchester-plumber-api/docs" // Important for Swagger
	v1 "colchester-plumber-api/internal/delivery/http/v1"
	"colchester-plumber-api/internal/usecase"
	"colchester-plumber-api/pkg/email"
	"colchester-plumber-api/pkg/logger"
	"colchester-plumber-api/pkg/redis"
	"colchester-plumber-api/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Colchester Plumber Quote API
// @version         1.0
// @description     Accepts website quote requests and forwards them by email.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	logger.Log.Info("Starting quote API", "port", cfg.Port, "email_driver", cfg.EmailDriver)

	// 3. Setup Redis (optional, rate limiting only)
	var redisClient *goredis.Client
	redisClient, err = redis.Connect(context.Background(), redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
	default:
		defer redisClient.Close()
	}

	// 4. Setup Email Service
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to set up email sender", "error", err)
		os.Exit(1)
	}
	if !sender.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - quote form will be unavailable", "provider", sender.Name())
	}
	templates, err := email.LoadTemplates()
	if err != nil {
		logger.Log.Error("Failed to load email templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup UseCases
	quoteUC := usecase.NewQuoteUsecase(sender, templates, validation.New(), usecase.QuoteSettings{
		From:          email.Address{Email: cfg.FromEmail},
		BusinessInbox: email.Address{Email: cfg.BusinessEmail},
		Branding: email.Branding{
			BusinessName: cfg.BusinessName,
			Phone:        cfg.BusinessPhone,
			WhatsApp:     cfg.BusinessWhatsApp,
			WebsiteName:  cfg.WebsiteName,
		},
		Location: cfg.Location(),
	})
	healthUC := usecase.NewHealthUsecase(sender, usecase.HealthSettings{
		EmailDriver:      cfg.EmailDriver,
		FromEmailSet:     config.IsSet("FROM_EMAIL"),
		BusinessEmailSet: config.IsSet("BUSINESS_EMAIL"),
		RedisEnabled:     redisClient != nil,
	})

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		QuoteUC:  quoteUC,
		HealthUC: healthUC,
		Redis:    redisClient,
		Config:   cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Quote endpoint available", "url", "http://localhost:"+cfg.Port+"/api/send-email")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
