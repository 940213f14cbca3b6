package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"scout-route-service/internal/domain"
	"scout-route-service/internal/platform/obs"
	"scout-route-service/internal/platform/retry"
	"scout-route-service/internal/ports"
)

// SeedFromJSONPostgres populates the Postgres events table from the same
// EventSeed JSON shape SeedFromJSON reads for SQLite, upserting by
// event_id with Postgres's ON CONFLICT rather than SQLite's
// INSERT OR REPLACE.
func SeedFromJSONPostgres(ctx context.Context, conn *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed events (postgres): read %q: %w", jsonPath, err)
	}

	var seeds []EventSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed events (postgres): parse json: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed events (postgres): begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO events (
		event_id, name, hub_label, created_at,
		checkpoints_json, slot_starts_json, open_at_json, finish_open_json, travel_json,
		window_start, window_end, dwell_minutes, speed, naismith
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (event_id) DO UPDATE
	SET name = EXCLUDED.name,
		hub_label = EXCLUDED.hub_label,
		checkpoints_json = EXCLUDED.checkpoints_json,
		slot_starts_json = EXCLUDED.slot_starts_json,
		open_at_json = EXCLUDED.open_at_json,
		finish_open_json = EXCLUDED.finish_open_json,
		travel_json = EXCLUDED.travel_json,
		window_start = EXCLUDED.window_start,
		window_end = EXCLUDED.window_end,
		dwell_minutes = EXCLUDED.dwell_minutes,
		speed = EXCLUDED.speed,
		naismith = EXCLUDED.naismith;
	`)
	if err != nil {
		return fmt.Errorf("seed events (postgres): prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, s := range seeds {
		if s.EventID == "" {
			return fmt.Errorf("seed events (postgres): item at index %d: event_id cannot be empty", i)
		}

		checkpointsJSON, err := json.Marshal(s.Checkpoints)
		if err != nil {
			return fmt.Errorf("seed events (postgres): event %q: marshal checkpoints: %w", s.EventID, err)
		}
		slotStartsJSON, err := json.Marshal(s.SlotStarts)
		if err != nil {
			return fmt.Errorf("seed events (postgres): event %q: marshal slot_starts: %w", s.EventID, err)
		}
		openAtJSON, err := json.Marshal(s.OpenAt)
		if err != nil {
			return fmt.Errorf("seed events (postgres): event %q: marshal open_at: %w", s.EventID, err)
		}
		finishOpenJSON, err := json.Marshal(s.FinishOpen)
		if err != nil {
			return fmt.Errorf("seed events (postgres): event %q: marshal finish_open: %w", s.EventID, err)
		}
		travelJSON, err := json.Marshal(s.Travel)
		if err != nil {
			return fmt.Errorf("seed events (postgres): event %q: marshal travel: %w", s.EventID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			s.EventID, s.Name, s.HubLabel, now,
			checkpointsJSON, slotStartsJSON, openAtJSON, finishOpenJSON, travelJSON,
			s.StartTime, s.EndTime, s.Dwell, s.Speed, s.Naismith,
		); err != nil {
			return fmt.Errorf("seed events (postgres): upsert event_id=%q: %w", s.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed events (postgres): commit tx: %w", err)
	}

	return nil
}

// PostgresEventRepository is the Postgres-backed implementation of the
// EventRepository port, used by deployments that share Postgres with the
// solve cache rather than running embedded SQLite.
type PostgresEventRepository struct{ DB *sql.DB }

func NewPostgresEventRepository(db *sql.DB) *PostgresEventRepository {
	return &PostgresEventRepository{DB: db}
}

const postgresEventSelectQuery = `
SELECT
	event_id, name, hub_label, created_at,
	checkpoints_json, slot_starts_json, open_at_json, finish_open_json, travel_json,
	window_start, window_end, dwell_minutes, speed, naismith
FROM events`

func (r *PostgresEventRepository) GetEvent(ctx context.Context, eventID string) (_ *domain.Event, err error) {
	defer obs.Time(ctx, "events.postgres.GetEvent")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres event repository: DB is nil")
	}
	if eventID == "" {
		return nil, errors.New("get event: event_id must not be empty")
	}

	var ev *domain.Event
	err = retry.Do(ctx, retry.Network, func() error {
		row := r.DB.QueryRowContext(ctx, postgresEventSelectQuery+" WHERE event_id = $1;", eventID)
		scanned, scanErr := scanPostgresEventRow(row)
		if scanErr != nil {
			return scanErr
		}
		ev = scanned
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event %q: %w", eventID, ports.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %q: %w", eventID, err)
	}
	return ev, nil
}

func (r *PostgresEventRepository) ListEvents(ctx context.Context) (_ []*domain.Event, err error) {
	defer obs.Time(ctx, "events.postgres.ListEvents")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres event repository: DB is nil")
	}

	var events []*domain.Event
	err = retry.Do(ctx, retry.Network, func() error {
		rows, queryErr := r.DB.QueryContext(ctx, postgresEventSelectQuery+" ORDER BY event_id;")
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		// Reset on every attempt: a retry re-runs the query from scratch,
		// so a partial scan from an earlier attempt must not linger.
		events = make([]*domain.Event, 0, 16)
		for rows.Next() {
			ev, scanErr := scanPostgresEventRow(rows)
			if scanErr != nil {
				return scanErr
			}
			events = append(events, ev)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}

// scanPostgresEventRow differs from scanEventRow only in accepting
// JSONB columns as []byte rather than SQLite's TEXT columns as string, and
// a native TIMESTAMPTZ for created_at rather than an RFC3339 string.
func scanPostgresEventRow(s rowScanner) (*domain.Event, error) {
	var (
		id, name, hub                                string
		createdAt                                    time.Time
		checkpointsJSON, slotStartsJSON, openAtJSON   []byte
		finishOpenJSON, travelJSON                    []byte
		windowStart, windowEnd, dwell, speed, naismith float64
	)

	if err := s.Scan(
		&id, &name, &hub, &createdAt,
		&checkpointsJSON, &slotStartsJSON, &openAtJSON, &finishOpenJSON, &travelJSON,
		&windowStart, &windowEnd, &dwell, &speed, &naismith,
	); err != nil {
		return nil, err
	}

	var labels []string
	if err := json.Unmarshal(checkpointsJSON, &labels); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoints: %w", err)
	}
	var slotStarts []float64
	if err := json.Unmarshal(slotStartsJSON, &slotStarts); err != nil {
		return nil, fmt.Errorf("unmarshal slot_starts: %w", err)
	}
	var openAt [][]bool
	if err := json.Unmarshal(openAtJSON, &openAt); err != nil {
		return nil, fmt.Errorf("unmarshal open_at: %w", err)
	}
	var finishOpen []bool
	if err := json.Unmarshal(finishOpenJSON, &finishOpen); err != nil {
		return nil, fmt.Errorf("unmarshal finish_open: %w", err)
	}
	var travel [][]float64
	if err := json.Unmarshal(travelJSON, &travel); err != nil {
		return nil, fmt.Errorf("unmarshal travel: %w", err)
	}

	checkpoints := make([]domain.Checkpoint, 0, len(labels))
	for i, label := range labels {
		cp, err := domain.NewCheckpoint(i, label)
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, cp)
	}

	schedule, err := domain.NewSlotSchedule(slotStarts)
	if err != nil {
		return nil, err
	}
	opening, err := domain.NewOpeningTable(openAt, finishOpen, len(checkpoints), schedule.Len())
	if err != nil {
		return nil, err
	}
	travelMatrix, err := domain.NewTravelMatrix(travel, len(checkpoints)+2)
	if err != nil {
		return nil, err
	}
	window, err := domain.NewWindow(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	ev := &domain.Event{
		ID:          id,
		Name:        name,
		HubLabel:    hub,
		CreatedAt:   createdAt,
		Checkpoints: checkpoints,
		Schedule:    schedule,
		Opening:     opening,
		Travel:      travelMatrix,
		Window:      window,
		Dwell:       dwell,
		Speed:       speed,
		Naismith:    naismith,
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return ev, nil
}
