package domain

import "testing"

func validEvent(t *testing.T) Event {
	t.Helper()

	cp0, err := NewCheckpoint(0, "A")
	if err != nil {
		t.Fatalf("NewCheckpoint: %v", err)
	}
	cp1, err := NewCheckpoint(1, "B")
	if err != nil {
		t.Fatalf("NewCheckpoint: %v", err)
	}

	schedule, err := NewSlotSchedule([]float64{600, 630})
	if err != nil {
		t.Fatalf("NewSlotSchedule: %v", err)
	}

	opening, err := NewOpeningTable(
		[][]bool{{true, true}, {true, true}},
		[]bool{true, true},
		2, 2,
	)
	if err != nil {
		t.Fatalf("NewOpeningTable: %v", err)
	}

	travel, err := NewTravelMatrix([][]float64{
		{0, 5, 5, 5},
		{5, 0, 5, 5},
		{5, 5, 0, 5},
		{5, 5, 5, 0},
	}, 4)
	if err != nil {
		t.Fatalf("NewTravelMatrix: %v", err)
	}

	window, err := NewWindow(600, 700)
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	return Event{
		ID:          "evt-1",
		Name:        "Test Event",
		HubLabel:    "Hub",
		Checkpoints: []Checkpoint{cp0, cp1},
		Schedule:    schedule,
		Opening:     opening,
		Travel:      travel,
		Window:      window,
		Dwell:       2,
	}
}

func TestEventStartFinishIndex(t *testing.T) {
	e := validEvent(t)
	if e.StartIndex() != 2 {
		t.Errorf("StartIndex() = %d, want 2", e.StartIndex())
	}
	if e.FinishIndex() != 3 {
		t.Errorf("FinishIndex() = %d, want 3", e.FinishIndex())
	}
}

func TestEventValidateAcceptsWellFormedEvent(t *testing.T) {
	e := validEvent(t)
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestEventValidateRejectsIndexMismatch(t *testing.T) {
	e := validEvent(t)
	e.Checkpoints[1].Index = 5
	if err := e.Validate(); err == nil {
		t.Error("Validate(): want error for mismatched checkpoint index, got nil")
	}
}

func TestEventValidateRejectsTravelSizeMismatch(t *testing.T) {
	e := validEvent(t)
	travel, err := NewTravelMatrix([][]float64{{0, 1}, {1, 0}}, 2)
	if err != nil {
		t.Fatalf("NewTravelMatrix: %v", err)
	}
	e.Travel = travel
	if err := e.Validate(); err == nil {
		t.Error("Validate(): want error for travel matrix size mismatch, got nil")
	}
}

func TestEventValidateRejectsNegativeDwell(t *testing.T) {
	e := validEvent(t)
	e.Dwell = -1
	if err := e.Validate(); err == nil {
		t.Error("Validate(): want error for negative dwell, got nil")
	}
}

func TestEventValidateRejectsTooManyCheckpoints(t *testing.T) {
	e := validEvent(t)
	e.Checkpoints = make([]Checkpoint, 18)
	for i := range e.Checkpoints {
		e.Checkpoints[i] = Checkpoint{Index: i}
	}
	if err := e.Validate(); err == nil {
		t.Error("Validate(): want error for n_checkpoints > 17, got nil")
	}
}

func TestNewWindowRejectsEndBeforeStart(t *testing.T) {
	if _, err := NewWindow(700, 600); err == nil {
		t.Error("NewWindow(700, 600): want error, got nil")
	}
}
