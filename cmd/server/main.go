package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appraisals/internal/app"
	"appraisals/internal/bank"
	"appraisals/internal/cache"
	"appraisals/internal/config"
	"appraisals/internal/repository"
	"appraisals/internal/service"
	"appraisals/internal/transport/rest"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// The feedback model credential is required up front: better to refuse to
	// start than to serve assessments that can never get real feedback.
	aiConfig := config.DefaultAIConfig()
	if !aiConfig.IsEnabled() {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}
	log.Printf("Feedback model: %s", aiConfig.Model)

	// Question bank
	questionBank, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Fatal("Failed to load question bank: ", err)
	}
	log.Printf("Loaded question bank: %d roles, %d questions", len(questionBank), questionBank.TotalQuestions())

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB: ", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis: ", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	questionRepo := repository.NewQuestionRepo(db)
	sessionCache := cache.NewSessionCache(rdb)

	// Reconcile the index before serving anything. A partially built index
	// is worse than a failed startup.
	syncSvc := service.NewSyncService(questionBank, questionRepo)
	if err := syncSvc.Reconcile(ctx); err != nil {
		log.Fatal("Failed to reconcile question index: ", err)
	}

	// Initialize services
	feedbackSvc := service.NewFeedbackService(aiConfig)
	assessSvc := service.NewAssessmentService(questionBank, questionRepo, feedbackSvc)
	sessionSvc := service.NewSessionService(assessSvc, sessionCache)

	router := rest.NewRouter(&app.App{
		Bank:           questionBank,
		QuestionRepo:   questionRepo,
		SessionCache:   sessionCache,
		AssessService:  assessSvc,
		SessionService: sessionSvc,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /health")
		log.Println("  GET  /v1/roles")
		log.Println("  POST /v1/assessment/start")
		log.Println("  GET  /v1/assessment/questions/{role}")
		log.Println("  POST /v1/assessment/submit")
		log.Println("  GET  /v1/stats/role/{role}")
		log.Println("  WS   /v1/ws/session")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe: ", err)
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
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exited")
}
