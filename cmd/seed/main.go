package main

import (
	"context"
	"log"
	"time"

	"appraisals/internal/bank"
	"appraisals/internal/config"
	"appraisals/internal/repository"
	"appraisals/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Drops the question index and rebuilds it from the bank. Useful after
// editing question text in place, which the role-set check cannot detect.
func main() {
	cfg := config.Load()

	questionBank, err := bank.Load(cfg.BankPath)
	if err != nil {
		log.Fatalf("Failed to load question bank: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := repository.NewQuestionRepo(client.Database(cfg.MongoDB))

	if err := repo.Drop(ctx); err != nil {
		log.Fatalf("Failed to drop question index: %v", err)
	}

	if err := service.NewSyncService(questionBank, repo).Reconcile(ctx); err != nil {
		log.Fatalf("Failed to rebuild question index: %v", err)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count index entries: %v", err)
	}

	log.Printf("Rebuilt question index: %d entries for %d roles", total, len(questionBank.Roles()))
}
