package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/rezkam/taskmaster/internal/application/auth"
	"github.com/rezkam/taskmaster/internal/config"
	"github.com/rezkam/taskmaster/internal/storage/sqlite"
)

// Command-line tool to create a user account and print a session token.
// This is not a production-grade tool, just a simple utility for
// development and testing.
func main() {
	email := flag.String("email", "", "Email address for the account (required)")
	password := flag.String("password", "", "Password for the account (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, err := sqlite.NewStore(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	authenticator := auth.NewAuthenticator(ctx, sqlite.NewAuthRepository(store), auth.Config{
		BcryptCost:       cfg.BcryptCost,
		OperationTimeout: cfg.AuthTimeout,
	})
	defer authenticator.Shutdown()

	user, sessionToken, err := authenticator.SignUp(ctx, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}

	fmt.Println("\nAccount created successfully!")
	fmt.Println("----------------------------------------")
	fmt.Printf("User ID: %s\n", user.ID)
	fmt.Printf("Email:   %s\n", user.Email)
	fmt.Println("----------------------------------------")
	fmt.Printf("\nSession token: %s\n\n", sessionToken)
	fmt.Println("IMPORTANT: Save this token now! It will not be shown again.")
	fmt.Println("----------------------------------------")
	fmt.Println("Usage example:")
	fmt.Printf("  curl -H \"Authorization: Bearer %s\" http://localhost:%s/v1/tasks\n", sessionToken, cfg.HTTPPort)
}
