package main

import (
	"log"
	"os"

	"mcq-writer-be/internal/model"
	"mcq-writer-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "./medical_mcq.db"
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	isPostgres := database.IsPostgresDSN(dsn)
	log.Printf("Starting GORM Migration (postgres=%v)...", isPostgres)

	// 3. Pre-Migration: extensions only exist on Postgres.
	if isPostgres {
		log.Println("Step 1: Setting up Extensions...")
		setupSQL := []string{
			`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
			`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
			`CREATE EXTENSION IF NOT EXISTS vector;`,
		}
		for _, sql := range setupSQL {
			if err := db.Exec(sql).Error; err != nil {
				log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
			}
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Source{},
		&model.Triplet{},
		&model.MCQ{},
		&model.MCQTriplet{},
		&model.ReviewSession{},
		&model.SessionEvent{},
	}
	// The pgvector column type does not exist on SQLite; similarity
	// queries are Postgres-only.
	if isPostgres {
		models = append(models, &model.TripletEmbedding{})
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
