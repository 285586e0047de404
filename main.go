package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"learnhub/config"
	"learnhub/middleware"
	"learnhub/routes"
	"learnhub/services"
	"learnhub/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(cfg.Env)
	defer logger.Sync()

	// External collaborators
	media, err := services.NewCloudinaryStore(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("Error initializing media store: %v", err)
	}
	assistant, err := services.NewGeminiAssistant(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Error initializing assistant: %v", err)
	}
	defer assistant.Close()

	deps := routes.Deps{
		Payments:  services.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret),
		Media:     media,
		Mailer:    services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom),
		Assistant: assistant,
		Logger:    logger,
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, deps)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
