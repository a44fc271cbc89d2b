package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"agenda/internal/auth"
	"agenda/internal/cache"
	"agenda/internal/config"
	"agenda/internal/db"
	"agenda/internal/handler"
	"agenda/internal/mail"
	"agenda/internal/model"
	"agenda/internal/repository"
	"agenda/internal/router"
	"agenda/internal/service"
	"agenda/internal/web"
)

func main() {
	cfg := config.Load()

	e := echo.New()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("renderer init: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Contact{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.SecretKey)
	sessionStore := auth.NewSessionStore(cacheClient)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailSender)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		tokenService,
		sessionStore,
		mailer,
		cfg.BaseURL,
		time.Duration(cfg.SessionTTLSeconds)*time.Second,
		time.Duration(cfg.ResetTokenTTLSeconds)*time.Second,
	)
	contactService := service.NewContactService(contactRepo, cfg.PageSize, cfg.SearchPageSize)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTLSeconds)
	contactHandler := handler.NewContactHandler(contactService)

	// Register routes
	router.Register(
		e,
		tokenService,
		sessionStore,
		userRepo,
		authHandler,
		contactHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
