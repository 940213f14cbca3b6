package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"scout-route-service/internal/adapters/cache"
	"scout-route-service/internal/adapters/repositories"
	"scout-route-service/internal/config"
	"scout-route-service/internal/platform/db"
)

// dbtool initializes and seeds the Postgres-dialect schema, for
// deployments that share Postgres rather than running embedded SQLite.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/events.json")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := cache.InitPostgresSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSONPostgres(ctx, conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
