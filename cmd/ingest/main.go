package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main runs the offline ETL: raw CSV export -> cleaned snapshot in Postgres.
// Usage: go run cmd/ingest/main.go -file=data/online_retail.csv
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("AJAYDATALABS BI - Snapshot Ingest")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	file := flag.String("file", os.Getenv("RAW_DATA_PATH"), "Path to the raw CSV export")
	flag.Parse()

	if *file == "" {
		log.Fatal("❌ No input file: pass -file or set RAW_DATA_PATH")
	}

	rows, report, err := services.NormalizeFile(*file)
	if err != nil {
		log.Fatalf("❌ Normalize failed: %v", err)
	}
	fmt.Printf("✓ Cleaned %d rows (kept %d)\n", report.RowsRead, report.RowsKept)

	config.InitDB()
	defer config.CloseDB()
	if err := services.MigrateSnapshot(); err != nil {
		log.Fatalf("❌ Failed to migrate snapshot table: %v", err)
	}

	version := uuid.Must(uuid.NewV7()).String()
	ctx, cancel := config.WithCustomTimeout(10 * time.Minute)
	defer cancel()

	bar := progressbar.Default(int64(len(rows)), "inserting")
	err = services.ReplaceSnapshot(ctx, rows, version, func(inserted int) {
		_ = bar.Add(inserted)
	})
	if err != nil {
		log.Fatalf("❌ Snapshot replace failed: %v", err)
	}
	report.DatasetVersion = version

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Snapshot Ingested Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Dataset version:   %s\n", version)
	fmt.Printf("Rows read:         %d\n", report.RowsRead)
	fmt.Printf("Rows kept:         %d\n", report.RowsKept)
	fmt.Printf("No description:    %d\n", report.DroppedNoDescription)
	fmt.Printf("Price <= 0:        %d\n", report.DroppedBadPrice)
	fmt.Printf("Unparseable:       %d\n", report.DroppedUnparseable)
	fmt.Printf("Cancellations:     %d\n", report.CancelledFlagged)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Train the revenue model: go run cmd/train/main.go")
	fmt.Println("2. Start the API server:    go run main.go")
	fmt.Println()
}
