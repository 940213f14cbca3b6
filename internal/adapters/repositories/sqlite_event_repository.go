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
	"scout-route-service/internal/ports"
)

// InitSchema creates the events and solve_cache tables used by the
// SQLite-backed adapters. Nested checkpoint/schedule/travel structures are
// stored as JSON columns rather than normalized rows: events are read whole
// (never queried by checkpoint), so normalizing them would only buy
// indexes nothing here uses.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEventsQuery := `
	CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		hub_label TEXT NOT NULL,
		created_at TEXT NOT NULL,
		checkpoints_json TEXT NOT NULL,
		slot_starts_json TEXT NOT NULL,
		open_at_json TEXT NOT NULL,
		finish_open_json TEXT NOT NULL,
		travel_json TEXT NOT NULL,
		window_start REAL NOT NULL,
		window_end REAL NOT NULL,
		dwell_minutes REAL NOT NULL,
		speed REAL NOT NULL,
		naismith REAL NOT NULL
	);
	`

	createSolveCacheQuery := `
	CREATE TABLE IF NOT EXISTS solve_cache (
		event_id TEXT NOT NULL,
		input_fingerprint TEXT NOT NULL,
		count INTEGER NOT NULL,
		route_json TEXT NOT NULL,
		finish_time REAL NOT NULL,
		solved_at TEXT NOT NULL,
		PRIMARY KEY (event_id, input_fingerprint)
	);
	`

	statements := []string{createEventsQuery, createSolveCacheQuery}
	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// EventSeed is the on-disk JSON shape accepted by SeedFromJSON, mirroring
// the event fields a host would otherwise assemble from a course-design
// tool. CreatedAt is set to the seed load time, not carried in the file.
type EventSeed struct {
	EventID     string      `json:"event_id"`
	Name        string      `json:"name"`
	HubLabel    string      `json:"hub_label"`
	Checkpoints []string    `json:"checkpoint_labels"`
	SlotStarts  []float64   `json:"slot_starts"`
	OpenAt      [][]bool    `json:"open_at"`
	FinishOpen  []bool      `json:"finish_open"`
	Travel      [][]float64 `json:"travel"`
	StartTime   float64     `json:"start_time"`
	EndTime     float64     `json:"end_time"`
	Dwell       float64     `json:"dwell_minutes"`
	Speed       float64     `json:"speed"`
	Naismith    float64     `json:"naismith"`
}

// SeedFromJSON populates the events table from a JSON file holding an
// array of EventSeed entries, upserting by event_id.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed events: read %q: %w", jsonPath, err)
	}

	var seeds []EventSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("seed events: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed events: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO events (
		event_id, name, hub_label, created_at,
		checkpoints_json, slot_starts_json, open_at_json, finish_open_json, travel_json,
		window_start, window_end, dwell_minutes, speed, naismith
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed events: prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, s := range seeds {
		if s.EventID == "" {
			return fmt.Errorf("seed events: item at index %d: event_id cannot be empty", i)
		}

		checkpointsJSON, err := json.Marshal(s.Checkpoints)
		if err != nil {
			return fmt.Errorf("seed events: event %q: marshal checkpoints: %w", s.EventID, err)
		}
		slotStartsJSON, err := json.Marshal(s.SlotStarts)
		if err != nil {
			return fmt.Errorf("seed events: event %q: marshal slot_starts: %w", s.EventID, err)
		}
		openAtJSON, err := json.Marshal(s.OpenAt)
		if err != nil {
			return fmt.Errorf("seed events: event %q: marshal open_at: %w", s.EventID, err)
		}
		finishOpenJSON, err := json.Marshal(s.FinishOpen)
		if err != nil {
			return fmt.Errorf("seed events: event %q: marshal finish_open: %w", s.EventID, err)
		}
		travelJSON, err := json.Marshal(s.Travel)
		if err != nil {
			return fmt.Errorf("seed events: event %q: marshal travel: %w", s.EventID, err)
		}

		if _, err := stmt.Exec(
			s.EventID, s.Name, s.HubLabel, now,
			string(checkpointsJSON), string(slotStartsJSON), string(openAtJSON), string(finishOpenJSON), string(travelJSON),
			s.StartTime, s.EndTime, s.Dwell, s.Speed, s.Naismith,
		); err != nil {
			return fmt.Errorf("seed events: insert event_id=%q: %w", s.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed events: commit tx: %w", err)
	}

	return nil
}

// SqliteEventRepository is the SQLite-backed implementation of the
// EventRepository port.
type SqliteEventRepository struct{ DB *sql.DB }

func NewSqliteEventRepository(db *sql.DB) *SqliteEventRepository {
	return &SqliteEventRepository{DB: db}
}

func (r *SqliteEventRepository) GetEvent(ctx context.Context, eventID string) (_ *domain.Event, err error) {
	defer obs.Time(ctx, "events.sqlite.GetEvent")(&err)

	if r.DB == nil {
		return nil, errors.New("sqlite event repository: DB is nil")
	}
	if eventID == "" {
		return nil, errors.New("get event: event_id must not be empty")
	}

	row := r.DB.QueryRowContext(ctx, eventSelectQuery+" WHERE event_id = ?;", eventID)
	ev, err := scanEventRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event %q: %w", eventID, ports.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %q: %w", eventID, err)
	}
	return ev, nil
}

func (r *SqliteEventRepository) ListEvents(ctx context.Context) (_ []*domain.Event, err error) {
	defer obs.Time(ctx, "events.sqlite.ListEvents")(&err)

	if r.DB == nil {
		return nil, errors.New("sqlite event repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, eventSelectQuery+" ORDER BY event_id;")
	if err != nil {
		return nil, fmt.Errorf("list events: query events table: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0, 16)
	for rows.Next() {
		ev, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: scan row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: row iteration: %w", err)
	}

	return events, nil
}

const eventSelectQuery = `
SELECT
	event_id, name, hub_label, created_at,
	checkpoints_json, slot_starts_json, open_at_json, finish_open_json, travel_json,
	window_start, window_end, dwell_minutes, speed, naismith
FROM events`

// rowScanner abstracts over *sql.Row and *sql.Rows, both of which satisfy
// Scan but share no common interface in database/sql.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEventRow(s rowScanner) (*domain.Event, error) {
	var (
		id, name, hub, createdAt string
		checkpointsJSON, slotStartsJSON, openAtJSON, finishOpenJSON, travelJSON string
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
	if err := json.Unmarshal([]byte(checkpointsJSON), &labels); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoints: %w", err)
	}
	var slotStarts []float64
	if err := json.Unmarshal([]byte(slotStartsJSON), &slotStarts); err != nil {
		return nil, fmt.Errorf("unmarshal slot_starts: %w", err)
	}
	var openAt [][]bool
	if err := json.Unmarshal([]byte(openAtJSON), &openAt); err != nil {
		return nil, fmt.Errorf("unmarshal open_at: %w", err)
	}
	var finishOpen []bool
	if err := json.Unmarshal([]byte(finishOpenJSON), &finishOpen); err != nil {
		return nil, fmt.Errorf("unmarshal finish_open: %w", err)
	}
	var travel [][]float64
	if err := json.Unmarshal([]byte(travelJSON), &travel); err != nil {
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
	parsedCreatedAt, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	ev := &domain.Event{
		ID:          id,
		Name:        name,
		HubLabel:    hub,
		CreatedAt:   parsedCreatedAt,
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
