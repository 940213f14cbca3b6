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
)

// SqliteSolveCache is a SQLite-backed cache for solve results, keyed by
// (event_id, input_fingerprint).
type SqliteSolveCache struct {
	DB *sql.DB
}

func NewSqliteSolveCache(db *sql.DB) *SqliteSolveCache {
	return &SqliteSolveCache{DB: db}
}

func (c *SqliteSolveCache) Get(ctx context.Context, eventID, fingerprint string) (_ *domain.SolveRecord, err error) {
	defer obs.Time(ctx, "solve.cache.sqlite.Get")(&err)

	if c.DB == nil {
		return nil, errors.New("solve cache: db is nil")
	}
	if eventID == "" || fingerprint == "" {
		return nil, errors.New("get solve cache: event_id and fingerprint must not be empty")
	}

	row := c.DB.QueryRowContext(ctx, `
	SELECT count, route_json, finish_time, solved_at
	FROM solve_cache
	WHERE event_id = ? AND input_fingerprint = ?;
	`, eventID, fingerprint)

	var count int
	var routeJSON, solvedAt string
	var finishTime float64
	if err := row.Scan(&count, &routeJSON, &finishTime, &solvedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solve cache: scan row: %w", err)
	}

	var route []int
	if err := json.Unmarshal([]byte(routeJSON), &route); err != nil {
		return nil, fmt.Errorf("get solve cache: unmarshal route: %w", err)
	}
	parsedSolvedAt, err := time.Parse(time.RFC3339, solvedAt)
	if err != nil {
		return nil, fmt.Errorf("get solve cache: parse solved_at: %w", err)
	}

	return &domain.SolveRecord{
		EventID:          eventID,
		InputFingerprint: fingerprint,
		Count:            count,
		Route:            route,
		FinishTime:       finishTime,
		SolvedAt:         parsedSolvedAt,
	}, nil
}

func (c *SqliteSolveCache) Put(ctx context.Context, record domain.SolveRecord) (err error) {
	defer obs.Time(ctx, "solve.cache.sqlite.Put")(&err)

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

	_, err = c.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO solve_cache (
		event_id, input_fingerprint, count, route_json, finish_time, solved_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`, record.EventID, record.InputFingerprint, record.Count, string(routeJSON), record.FinishTime, record.SolvedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put solve cache: insert: %w", err)
	}

	return nil
}
