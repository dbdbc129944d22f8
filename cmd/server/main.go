package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"littlestar/internal/config"
	"littlestar/internal/database"
	"littlestar/internal/handlers"
	"littlestar/internal/llm"
	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/security"
	"littlestar/internal/service"
	"littlestar/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the JSON document store
	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize data store: %v", err)
	}

	// Overlay CHILD_* environment values on profile reads; never persisted
	st.OverrideProfile(models.ChildProfile{
		Name:      cfg.ChildName,
		Age:       cfg.ChildAge,
		Pronouns:  cfg.ChildPronouns,
		Interests: cfg.ChildInterests,
	})

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	// Resolve the generation API key: environment first, settings second.
	apiKey := cfg.APIKey
	if apiKey == "" {
		settings, err := st.Settings()
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		apiKey = settings.APIKey
	}
	if apiKey == "" {
		log.Println("No API key configured; generation will ask for a grown-up")
	}
	client := llm.NewOpenAIClient(apiKey)

	// Session secret falls back to a random per-process value, which logs
	// parents out on restart.
	secret := cfg.SessionSecret
	if secret == "" {
		secret = randomSecret()
		log.Println("SESSION_SECRET not set; parent sessions will not survive restarts")
	}

	// Initialize repositories
	engagementRepo := repository.NewEngagementRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Initialize services
	tracker := service.NewEngagementTracker(engagementRepo)
	sessions := service.NewSessionOrchestrator(st, client, tracker, historyRepo)
	authService := service.NewAuthService(st, secret, cfg.SessionDuration, cfg.AdminPIN)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.ParentEmail)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if emailService.IsEnabled() {
		sessions.SetQuotaNotifier(emailService)
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(5, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	childHandler := handlers.NewChildHandler(sessions, st)
	adminHandler := handlers.NewAdminHandler(authService, emailService, st, historyRepo, tracker)

	// Setup routes
	mux := http.NewServeMux()

	// Child routes
	mux.HandleFunc("POST /api/child/enter", childHandler.Enter)
	mux.HandleFunc("POST /api/child/activity/{kind}", childHandler.Activity)
	mux.HandleFunc("GET /api/child/progress", childHandler.Progress)
	mux.HandleFunc("GET /api/child/affirmations", childHandler.Affirmations)
	mux.HandleFunc("GET /api/child/lessons", childHandler.Lessons)
	mux.HandleFunc("POST /api/child/read-aloud", childHandler.ReadAloud)

	// Parent routes
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("POST /api/admin/logout", adminHandler.Logout)
	mux.HandleFunc("POST /api/admin/pin", middleware.RequireParent(adminHandler.ChangePIN))
	mux.HandleFunc("GET /api/admin/settings", middleware.RequireParent(adminHandler.GetSettings))
	mux.HandleFunc("PUT /api/admin/settings", middleware.RequireParent(adminHandler.UpdateSettings))
	mux.HandleFunc("GET /api/admin/profile", middleware.RequireParent(adminHandler.GetProfile))
	mux.HandleFunc("PUT /api/admin/profile", middleware.RequireParent(adminHandler.UpdateProfile))
	mux.HandleFunc("GET /api/admin/affirmations", middleware.RequireParent(adminHandler.GetAffirmations))
	mux.HandleFunc("PUT /api/admin/affirmations", middleware.RequireParent(adminHandler.UpdateAffirmations))
	mux.HandleFunc("GET /api/admin/lessons", middleware.RequireParent(adminHandler.GetLessons))
	mux.HandleFunc("PUT /api/admin/lessons", middleware.RequireParent(adminHandler.UpdateLessons))
	mux.HandleFunc("GET /api/admin/usage", middleware.RequireParent(adminHandler.GetUsage))
	mux.HandleFunc("POST /api/admin/usage/reset", middleware.RequireParent(adminHandler.ResetUsage))
	mux.HandleFunc("GET /api/admin/history", middleware.RequireParent(adminHandler.GetHistory))
	mux.HandleFunc("POST /api/admin/summary", middleware.RequireParent(adminHandler.SendSummary))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
