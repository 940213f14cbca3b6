package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"scout-route-service/internal/adapters/cache"
	"scout-route-service/internal/adapters/repositories"
	"scout-route-service/internal/api"
	"scout-route-service/internal/config"
	"scout-route-service/internal/ports"
	"scout-route-service/internal/services"
)

// main is the application composition root. It wires concrete adapters
// (SQLite event storage, SQLite or Redis solve caching) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/events.json")
	port := config.Get("PORT", "8080")
	redisAddr := config.Get("REDIS_ADDR", "")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteEventRepository(db)
	solveCache := newSolveCache(db, redisAddr)
	solver := services.NewCoreSolver()
	solveService := services.NewSolveEventService(repo, solveCache, solver)

	warmStartupCache(repo, solveService)

	router := api.NewRouter(repo, solveService)

	// WriteTimeout is generous relative to the core's worst case (N=17
	// checkpoints, a few hundred milliseconds of DP work) to leave room
	// for slow clients rather than the algorithm itself.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// warmStartupCache pre-solves every known event so the first request
// against each one is a cache hit rather than a cold DP run.
func warmStartupCache(repo ports.EventRepository, solveService *services.SolveEventService) {
	ctx := context.Background()
	events, err := repo.ListEvents(ctx)
	if err != nil {
		log.Printf("Warm cache: list events: %v", err)
		return
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	if err := services.WarmEvents(ctx, solveService, ids); err != nil {
		log.Printf("Warm cache: %v", err)
	}
}

func newSolveCache(db *sql.DB, redisAddr string) ports.SolveCache {
	if redisAddr == "" {
		return cache.NewSqliteSolveCache(db)
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	log.Printf("Solve cache backed by redis addr=%s", redisAddr)
	return cache.NewRedisSolveCache(client, 24*time.Hour)
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
