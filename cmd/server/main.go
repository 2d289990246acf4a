package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vetsupport/internal/cache"
	"vetsupport/internal/config"
	"vetsupport/internal/repository"
	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest"
	"vetsupport/internal/transport/ws"
)

// @title Veteran Support API
// @version 1.0
// @description Mental-health support backend: assessments, crisis state, companion chat
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	assessmentRepo := repository.NewAssessmentRepo(db)
	profileRepo := repository.NewProfileRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	profileCache := cache.NewProfileCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	crisisSvc := service.NewCrisisService()
	assessmentSvc := service.NewAssessmentService(assessmentRepo, profileRepo, profileCache, crisisSvc)
	companionSvc := service.NewCompanionService(sessionCache, profileRepo, crisisSvc)
	profileSvc := service.NewProfileService(profileRepo, profileCache, crisisSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	crisisSvc.SetBroadcaster(wsHub)
	companionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		CompanionService:  companionSvc,
		CrisisService:     crisisSvc,
		ProfileService:    profileSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/assessments/instruments")
		log.Println("  POST/GET /v1/assessments")
		log.Println("  POST/GET/DELETE /v1/chat/session")
		log.Println("  POST/GET /v1/chat/messages")
		log.Println("  GET  /v1/crisis/state")
		log.Println("  GET  /v1/crisis/resources")
		log.Println("  POST /v1/crisis/alerts/{alertId}/ack")
		log.Println("  POST /v1/crisis/overlay/dismiss")
		log.Println("  GET/PUT /v1/profile")
		log.Println("  WS  /v1/ws/veteran")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
