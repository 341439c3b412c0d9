package main

import (
	"fmt"
	"log"
	"net/http"

	"artloop/internal/config"
	"artloop/internal/database"
	"artloop/internal/handlers"
	"artloop/internal/middleware"
	"artloop/internal/repositories"
	"artloop/internal/services"

	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established")

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	registrationRepo := repositories.NewRegistrationRepository(db.DB)
	eventRepo := repositories.NewEventRepository(db.DB)
	artistRepo := repositories.NewArtistRepository(db.DB)

	// Initialize notification sender; fall back to the mock when Resend is
	// not configured
	var sender services.NotificationSender
	if cfg.Resend.APIKey != "" {
		sender = services.NewResendEmailService(services.ResendConfig{
			APIKey:    cfg.Resend.APIKey,
			FromEmail: cfg.Resend.FromEmail,
			FromName:  cfg.Resend.FromName,
		})
		log.Println("Email service: using Resend API")
	} else {
		sender = services.NewMockEmailService()
	}
	mailer := services.NewRegistrationMailer(sender, cfg.App.AdminEmails)

	// Initialize services
	registrationService := services.NewRegistrationService(
		registrationRepo,
		eventRepo,
		services.NewRandomCodeGenerator(),
		services.NewVerificationLinkEncoder(cfg.App.BaseURL),
		mailer,
	)
	eventService := services.NewEventService(eventRepo)
	artistService := services.NewArtistService(artistRepo)
	paymentService := services.NewStripeService(services.StripeConfig{
		SecretKey:      cfg.Stripe.SecretKey,
		PublishableKey: cfg.Stripe.PublishableKey,
	})

	// Admin gate
	sessionStore := sessions.NewCookieStore([]byte(cfg.Admin.SessionSecret))
	adminGate := middleware.NewAdminMiddleware(cfg.Admin, sessionStore)

	router := handlers.NewRouter(handlers.RouterDeps{
		Registrations: handlers.NewRegistrationHandler(registrationService),
		Events:        handlers.NewEventHandler(eventService),
		Artists:       handlers.NewArtistHandler(artistService),
		Payments:      handlers.NewPaymentHandler(paymentService),
		Orders:        handlers.NewOrderHandler(mailer),
		Admin:         handlers.NewAdminHandler(adminGate),
		Health:        handlers.NewHealthHandler(db.DB),
		AdminGate:     adminGate,
		CORS:          middleware.DefaultCORSConfig(),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("ArtLoop server listening on %s (env: %s)", addr, cfg.Server.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
