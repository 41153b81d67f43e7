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

	appconfig "travelhealth/config"
	"travelhealth/internal/cache"
	"travelhealth/internal/config"
	"travelhealth/internal/repository"
	"travelhealth/internal/service"
	"travelhealth/internal/transport/rest"
	"travelhealth/internal/transport/ws"
)

// @title Travel Health Companion API
// @version 1.0
// @description Adaptive health interview and trip analysis backend
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := appconfig.Load()

	backendCfg := config.DefaultBackendConfig()
	log.Printf("AI backend: %s (timeout %dms)", backendCfg.BaseURL, backendCfg.TimeoutMS)

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
	userRepo := repository.NewUserRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	enrichmentRepo := repository.NewEnrichmentRepo(db)
	tripRepo := repository.NewTripRepo(db)
	vaccinationRepo := repository.NewVaccinationRepo(db)
	datasetRepo := repository.NewDatasetRepo(db)

	// Initialize caches
	resumeCache := cache.NewResumeCache(rdb)
	translationCache := cache.NewTranslationCache(rdb)

	// Initialize services
	healthClient := service.NewHealthClient(backendCfg)
	authSvc := service.NewAuthService(userRepo)
	interviewSvc := service.NewInterviewService(resumeCache)
	submissionSvc := service.NewSubmissionService(submissionRepo, enrichmentRepo, resumeCache, healthClient)
	tripSvc := service.NewTripService(tripRepo, submissionRepo, datasetRepo, healthClient)
	profileSvc := service.NewProfileService(userRepo, vaccinationRepo)
	translationSvc := service.NewTranslationService(healthClient, translationCache)

	// Wire the submission pipeline behind the interview engine
	interviewSvc.SetSubmitter(submissionSvc)

	// Inject notifier (wsHub implements service.Notifier)
	interviewSvc.SetNotifier(wsHub)
	submissionSvc.SetNotifier(wsHub)
	tripSvc.SetNotifier(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		InterviewService:   interviewSvc,
		SubmissionService:  submissionSvc,
		TripService:        tripSvc,
		ProfileService:     profileSvc,
		TranslationService: translationSvc,
		WSHub:              wsHub,
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
		log.Println("  POST /v1/auth/register | /v1/auth/login")
		log.Println("  GET  /v1/interview/current")
		log.Println("  POST /v1/interview/answers")
		log.Println("  GET  /v1/submissions/latest")
		log.Println("  POST/GET /v1/trips")
		log.Println("  GET/PUT /v1/profile")
		log.Println("  WS  /v1/ws")

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
