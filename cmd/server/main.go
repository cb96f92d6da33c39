package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolio/docs"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/mail"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
)

// @title Portfolio API
// @version 1.0
// @description Read-only JSON feed of the portfolio's project posts.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	gormDB, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Printf("Warning: failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheClient.Ping(ctx); err != nil {
			log.Printf("Warning: redis unreachable, logout revocation disabled: %v", err)
		}
		cancel()
	} else {
		log.Println("REDIS_ADDR not set, logout revocation disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	if state, err := userRepo.State(context.Background()); err != nil {
		log.Printf("Warning: could not read admin account state: %v", err)
	} else {
		log.Printf("Admin account: %s", state)
	}

	// Initialize auth components
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Address:  cfg.MailAddress,
		Password: cfg.MailPassword,
	})
	authService := service.NewAuthService(userRepo, auth.DefaultPasswordHasher(), sessions, tokenStore)
	projectService := service.NewProjectService(projectRepo)
	profileService := service.NewProfileService(profileRepo)
	contactService := service.NewContactService(sender)

	e := echo.New()

	// Register routes
	if err := router.Register(
		e,
		cfg,
		sessions,
		userRepo,
		tokenStore,
		handler.NewAuthHandler(authService, sessions),
		handler.NewProjectHandler(projectService),
		handler.NewProfileHandler(profileService),
		handler.NewContactHandler(contactService),
		handler.NewAPIHandler(projectService),
	); err != nil {
		log.Fatalf("router init: %v", err)
	}

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// swaggerHost strips any scheme from SWAGGER_HOST and falls back to the local listener.
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.ServerPort
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "http://")
	return strings.TrimPrefix(host, "https://")
}
