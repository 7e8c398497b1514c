package main

import (
	"log"
	"os"

	"legal-assistant-be/internal/model"
	"legal-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate doesn't handle
	log.Println("Step 1: Setting up Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to execute setup SQL (%s): %v", sql, err)
		}
	}

	// 4. AutoMigrate schema
	log.Println("Step 2: Migrating sections table...")
	if err := db.AutoMigrate(&model.Section{}); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Similarity index (ivfflat over cosine distance)
	log.Println("Step 3: Creating vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_sections_embedding
		ON sections USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Fatal("Error: Failed to create vector index:", err)
	}

	log.Println("✅ Migration complete")
}
