package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/rs/cors"

	httpapi "lenslend-backend/internal/api/http"
	"lenslend-backend/internal/config"
	"lenslend-backend/internal/logger"
	"lenslend-backend/internal/repository/postgres"
	"lenslend-backend/internal/security"
	"lenslend-backend/internal/service"
	"lenslend-backend/internal/ws"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LensLend Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Realtime Hub
	hub := ws.NewHub()
	go hub.Run()
	events := ws.NewEventBroadcaster(hub)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	gearSvc := service.NewGearService(store.GearRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	messagingSvc := service.NewMessagingService(store.ConversationRepository, store.MessageRepository, store.NotificationRepository, store.UserRepository, store.BookingRepository, events)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.GearRepository, store.UserRepository, store.ConversationRepository, store.NotificationRepository, emailSvc, events)

	// Initialize HTTP Handlers
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:          httpapi.NewAuthHandler(authSvc),
		Users:         httpapi.NewUserHandler(userSvc),
		Gear:          httpapi.NewGearHandler(gearSvc),
		Bookings:      httpapi.NewBookingHandler(bookingSvc, messagingSvc),
		Messages:      httpapi.NewMessageHandler(messagingSvc),
		Notifications: httpapi.NewNotificationHandler(noteSvc),
		WS:            httpapi.NewWSHandler(hub),
		AuthMW:        httpapi.NewAuthMiddleware(tokenManager),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), corsHandler); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
