package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"portfolio/api-server/config"
	"portfolio/api-server/database"
	"portfolio/api-server/handlers"
	"portfolio/api-server/internal/auth"
	"portfolio/api-server/manager"
	"portfolio/api-server/mediastore"
	"portfolio/api-server/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet at this point.
		panic(err)
	}

	log := config.NewLogger(cfg.Environment)

	db, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Infof("Connected to MongoDB database %s", cfg.MongoDatabase)

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := db.Initialize(initCtx); err != nil {
		log.Fatalf("Failed to initialize MongoDB indexes: %v", err)
	}
	cancel()

	media, err := mediastore.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	tokenAuth, err := auth.NewTokenAuth(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token auth: %v", err)
	}

	repo := database.NewProjectRepository(db)
	mgr := manager.New(repo, media, log, cfg.MetadataTimeout, cfg.UploadTimeout)
	h := handlers.NewApplicationHandler(mgr, media, tokenAuth, log, cfg)

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // media batches
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(log))

	handlers.RegisterRoutes(app, h)

	go func() {
		log.Infof("Starting API server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Failed to shut down server cleanly: %v", err)
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer closeCancel()
	if err := db.Close(closeCtx); err != nil {
		log.Errorf("Failed to close MongoDB connection: %v", err)
	}
}
