package main

import (
	"fmt"
	"log"
	"os"

	"codeberg.org/framegen/client/internal/auth"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// generates a devserver-compatible JWT for manual API testing
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	userID := os.Getenv("TEST_USER_ID")
	if userID == "" {
		userID = uuid.New().String()
	}

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "test@framegen.dev"
	}

	token, err := auth.GenerateJWT(secret, userID, email)
	if err != nil {
		log.Fatalf("Failed to generate JWT: %v", err)
	}

	fmt.Printf("Test JWT for %s (ID: %s):\n%s\n\n", email, userID, token)
	fmt.Printf("Export this token for testing:\nexport TEST_TOKEN=\"%s\"\n", token)
}
