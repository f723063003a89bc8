package main

import (
	"context"
	"log"
	"os"
	"time"

	"photodesk/internal/database"
	"photodesk/internal/repository"
)

// Deletes download selections that expired before ever being approved.
// Intended to run from cron.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := repository.NewSelectionRepository(db).DeleteExpiredUnapproved(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("selection cleanup failed: %v", err)
	}

	log.Printf("selection cleanup completed: deleted=%d", n)
}
