package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main trains the gradient-boosted revenue model on the current snapshot
// and writes the JSON artifact the forecast endpoint serves from.
// Usage: go run cmd/train/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("AJAYDATALABS BI - Revenue Model Trainer")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	if err := services.MigrateSnapshot(); err != nil {
		log.Fatalf("❌ Failed to migrate snapshot table: %v", err)
	}

	ctx, cancel := config.WithCustomTimeout(5 * time.Minute)
	defer cancel()

	rows, err := services.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load snapshot: %v", err)
	}
	features := services.BuildMonthlyFeatures(rows)
	fmt.Printf("✓ Snapshot loaded: %d rows, %d monthly feature rows\n", len(rows), len(features))

	cfg := services.DefaultTrainConfig()
	bar := progressbar.Default(int64(cfg.Rounds), "boosting")
	model, report, err := services.TrainRevenueModel(features, cfg, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		log.Fatalf("❌ Training failed: %v", err)
	}

	modelPath := os.Getenv("MODEL_PATH")
	if modelPath == "" {
		modelPath = "artifacts/revenue_model.json"
	}
	if err := model.Save(modelPath); err != nil {
		log.Fatalf("❌ Failed to save model artifact: %v", err)
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Revenue Model Trained Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Artifact:     %s\n", modelPath)
	fmt.Printf("Trees:        %d (lr=%.3f, depth<=%d)\n", len(model.Trees), cfg.LearningRate, cfg.MaxDepth)
	fmt.Printf("Train months: %d\n", report.TrainRows)
	fmt.Printf("Test months:  %d (chronological split, no shuffle)\n", report.TestRows)
	fmt.Printf("Test R²:      %.4f\n", report.R2)
	fmt.Println()
}
