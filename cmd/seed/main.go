package main

import (
	"log"
	"os"

	"research-assistant-be/internal/model"
	"research-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the singleton local user so the API has a profile to attach
// sessions and documents to. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	username := os.Getenv("LOCAL_USER_NAME")
	if username == "" {
		username = "local_user"
	}

	var existing model.User
	err = db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Printf("User '%s' already exists (id=%s), nothing to do.", username, existing.Id)
		return
	}

	user := model.User{
		Id:       uuid.New(),
		Username: username,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create user: %v", err)
	}

	log.Printf("✅ Seeded local user '%s' (id=%s)", username, user.Id)
}
