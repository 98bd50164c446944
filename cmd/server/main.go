package main

import (
	"alcyxob/fitness-planner/internal/api"
	"alcyxob/fitness-planner/internal/config"
	"alcyxob/fitness-planner/internal/generator"
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/mailer"
	"alcyxob/fitness-planner/internal/service"
	"alcyxob/fitness-planner/internal/storage"
	"alcyxob/fitness-planner/internal/verification"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Fitness Planner API
// @version 1.0
// @description Accounts, workout preferences and AI generated training plans.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Fitness Planner Server...", "driver", cfg.Database.Driver)

	// --- Storage backend ---
	repos, err := openRepositories(cfg.Database, log)
	if err != nil {
		log.Fatal("Could not open database", "error", err)
	}
	defer repos.close()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatal("Failed to initialize S3 storage", "error", err)
	}

	codes, err := newCodeStore(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize verification store", "error", err)
	}
	mail, err := newMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", "error", err)
	}

	gen := generator.NewOpenAI(generator.OpenAIConfig{
		APIKey:           cfg.Generator.APIKey,
		BaseURL:          cfg.Generator.BaseURL,
		StructuredOutput: cfg.Generator.StructuredOutput,
	}, log)

	// --- Initialize Services ---
	tokens := service.NewTokens(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	services := api.Services{
		Auth:       service.NewAuthService(log, repos.users, tokens, codes, mail, cfg.Verification.CodeTTL),
		Account:    service.NewAccountService(log, repos.users, fileStorage, codes, mail, cfg.Verification.CodeTTL),
		Profile:    service.NewProfileService(log, repos.profiles),
		Preference: service.NewPreferenceService(log, repos.preferences),
		Plan: service.NewPlanService(log, repos.preferences, repos.plans, gen, service.PlanConfig{
			Model:            cfg.Generator.Model,
			MaxTokens:        cfg.Generator.MaxTokens,
			Temperature:      cfg.Generator.Temperature,
			Timeout:          cfg.Generator.Timeout,
			StructuredOutput: cfg.Generator.StructuredOutput,
		}),
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(log, cfg.Server.CORSOrigins, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	go func() {
		log.Info("Server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// In-flight generations may need the whole write timeout to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout+5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exiting.")
}

func newCodeStore(cfg config.RedisConfig, log *logger.Logger) (verification.Store, error) {
	if cfg.Addr == "" {
		log.Warn("redis.addr not set; verification codes are kept in memory")
		return verification.NewMemoryStore(), nil
	}
	return verification.NewRedisStore(log, cfg.Addr, cfg.Password, cfg.DB)
}

func newMailer(cfg config.MailConfig, log *logger.Logger) (mailer.Mailer, error) {
	if cfg.Provider == "sendgrid" {
		return mailer.NewSendGrid(log, mailer.SendGridConfig{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		})
	}
	return mailer.NewLogMailer(log), nil
}
