package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scout-route-service/internal/domain"
	"scout-route-service/internal/platform/obs"
	"scout-route-service/internal/platform/retry"
)

// PostgresSolveCache is a Postgres-backed cache for solve results, for
// deployments that share Postgres with the Postgres-dialect event
// repository instead of running embedded SQLite. cmd/dbtool creates its
// table via InitPostgresSchema; no cmd/ binary constructs one.
type PostgresSolveCache struct {
	DB *sql.DB
}

func NewPostgresSolveCache(db *sql.DB) *PostgresSolveCache {
	return &PostgresSolveCache{DB: db}
}

func (c *PostgresSolveCache) Get(ctx context.Context, eventID, fingerprint string) (_ *domain.SolveRecord, err error) {
	defer obs.Time(ctx, "solve.cache.postgres.Get")(&err)

	if c.DB == nil {
		return nil, errors.New("solve cache: db is nil")
	}
	if eventID == "" || fingerprint == "" {
		return nil, errors.New("get solve cache: event_id and fingerprint must not be empty")
	}

	var count int
	var routeJSON string
	var finishTime float64
	var solvedAt time.Time
	found := false

	err = retry.Do(ctx, retry.Network, func() error {
		row := c.DB.QueryRowContext(ctx, `
		SELECT count, route_json, finish_time, solved_at
		FROM solve_cache
		WHERE event_id = $1 AND input_fingerprint = $2;
		`, eventID, fingerprint)

		scanErr := row.Scan(&count, &routeJSON, &finishTime, &solvedAt)
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil
		}
		if scanErr != nil {
			return fmt.Errorf("get solve cache: scan row: %w", scanErr)
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var route []int
	if err := json.Unmarshal([]byte(routeJSON), &route); err != nil {
		return nil, fmt.Errorf("get solve cache: unmarshal route: %w", err)
	}

	return &domain.SolveRecord{
		EventID:          eventID,
		InputFingerprint: fingerprint,
		Count:            count,
		Route:            route,
		FinishTime:       finishTime,
		SolvedAt:         solvedAt,
	}, nil
}

func (c *PostgresSolveCache) Put(ctx context.Context, record domain.SolveRecord) (err error) {
	defer obs.Time(ctx, "solve.cache.postgres.Put")(&err)

	if c.DB == nil {
		return errors.New("solve cache: db is nil")
	}
	if record.EventID == "" || record.InputFingerprint == "" {
		return errors.New("put solve cache: event_id and fingerprint must not be empty")
	}

	routeJSON, err := json.Marshal(record.Route)
	if err != nil {
		return fmt.Errorf("put solve cache: marshal route: %w", err)
	}

	err = retry.Do(ctx, retry.Network, func() error {
		_, execErr := c.DB.ExecContext(ctx, `
		INSERT INTO solve_cache (event_id, input_fingerprint, count, route_json, finish_time, solved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, input_fingerprint) DO UPDATE
		SET count = EXCLUDED.count,
			route_json = EXCLUDED.route_json,
			finish_time = EXCLUDED.finish_time,
			solved_at = EXCLUDED.solved_at;
		`, record.EventID, record.InputFingerprint, record.Count, string(routeJSON), record.FinishTime, record.SolvedAt.UTC())
		return execErr
	})
	if err != nil {
		return fmt.Errorf("put solve cache: upsert: %w", err)
	}

	return nil
}

// InitPostgresSchema creates the Postgres-dialect events and solve_cache
// tables. The SQLite path's seed loader upserts with INSERT OR REPLACE,
// which is SQLite-only syntax and would fail against pgx, so the
// Postgres path gets its own ON CONFLICT upsert instead.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			hub_label TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			checkpoints_json JSONB NOT NULL,
			slot_starts_json JSONB NOT NULL,
			open_at_json JSONB NOT NULL,
			finish_open_json JSONB NOT NULL,
			travel_json JSONB NOT NULL,
			window_start DOUBLE PRECISION NOT NULL,
			window_end DOUBLE PRECISION NOT NULL,
			dwell_minutes DOUBLE PRECISION NOT NULL,
			speed DOUBLE PRECISION NOT NULL,
			naismith DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS solve_cache (
			event_id TEXT NOT NULL,
			input_fingerprint TEXT NOT NULL,
			count INTEGER NOT NULL,
			route_json JSONB NOT NULL,
			finish_time DOUBLE PRECISION NOT NULL,
			solved_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (event_id, input_fingerprint)
		);`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
