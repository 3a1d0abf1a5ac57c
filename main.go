package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"delish/config"
	"delish/database"
	"delish/handlers"
	"delish/repositories"
	"delish/routes"
	"delish/services"
)

func main() {
	log.Println("🚀 Starting Delish Backend Server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration error:", err)
	}

	log.Println("🔌 Connecting to MongoDB...")

	var client *mongo.Client
	var dbErr error
	for i := 1; i <= 3; i++ {
		client, dbErr = database.Connect(cfg.MongoURI)
		if dbErr != nil {
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}
	defer database.Disconnect(client)

	db := client.Database(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal("❌ Failed to create indexes:", err)
	}
	cancel()
	log.Println("✅ MongoDB connected, indexes ensured")

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	storeRepo := repositories.NewMongoStoreRepository(db)
	userRepo := repositories.NewMongoUserRepository(db)
	reviewRepo := repositories.NewMongoReviewRepository(db)

	// Services
	mailer := services.NewSMTPMailer(cfg.SMTP)
	authService := services.NewAuthService(userRepo, mailer, cfg.JWTSecret)
	storeService := services.NewStoreService(storeRepo, userRepo, reviewRepo)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.CloudinaryURL)

	// Handlers
	router := routes.SetupRouter(routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Stores:  handlers.NewStoreHandler(storeService),
		Search:  handlers.NewSearchHandler(storeService),
		Reviews: handlers.NewReviewHandler(storeService),
		Uploads: handlers.NewUploadHandler(uploadService),
	}, cfg.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	router.Static("/uploads", cfg.UploadDir)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
