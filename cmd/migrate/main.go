package main

import (
	"log"
	"os"

	"github.com/nithinvarma411/concizee/internal/model"
	"github.com/nithinvarma411/concizee/pkg/database"

	"github.com/fatih/color"
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

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Starting GORM Migration")

	// 3. Pre-Migration: uuid defaults for rows created outside the app
	color.Yellow("\nStep 1: Setting up Extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
	}

	// 4. AutoMigrate All Models
	color.Yellow("\nStep 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.UserProvider{},
		&model.Chat{},
		&model.Message{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("\n✅ Migration complete (%d tables)", len(models))
}
