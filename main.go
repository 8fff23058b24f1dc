package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"brelis-api/config"
	"brelis-api/controllers"
	"brelis-api/middleware"
	"brelis-api/routes"
	"brelis-api/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWT.Secret)

	// Initialize EmailService
	emailService := utils.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Settings are loaded once and injected into the controllers that
	// price shipping and coins.
	settingsController, err := controllers.NewSettingsController(client, cfg)
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	c := routes.Controllers{
		User:     controllers.NewUserController(client, cfg, emailService),
		Product:  controllers.NewProductController(client, cfg),
		Cart:     controllers.NewCartController(client, cfg),
		Order:    controllers.NewOrderController(client, cfg, settingsController, emailService),
		Admin:    controllers.NewAdminController(client, cfg, emailService),
		Review:   controllers.NewReviewController(client, cfg),
		Lookbook: controllers.NewLookbookController(client, cfg),
		Settings: settingsController,
		Upload:   controllers.NewUploadController(cfg),
		Contact:  controllers.NewContactController(settingsController, emailService),
	}

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.MetricsMiddleware)
	router.Handle("/metrics", middleware.MetricsHandler()).Methods("GET")

	routes.RegisterRoutes(router, c, cfg.Upload.Dir)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server is running", slog.String("addr", cfg.HTTPServer.Addr), slog.String("env", cfg.Env))
	log.Fatal(server.ListenAndServe())
}
