package domain

import "testing"

func TestNewSlotScheduleRejectsEmpty(t *testing.T) {
	if _, err := NewSlotSchedule(nil); err == nil {
		t.Error("NewSlotSchedule(nil): want error, got nil")
	}
}

func TestNewSlotScheduleRejectsTooMany(t *testing.T) {
	starts := make([]float64, 16)
	for i := range starts {
		starts[i] = float64(600 + i*30)
	}
	if _, err := NewSlotSchedule(starts); err == nil {
		t.Error("NewSlotSchedule: want error for n_slots > 15, got nil")
	}
}

func TestNewSlotScheduleRejectsNonMultipleOf30(t *testing.T) {
	if _, err := NewSlotSchedule([]float64{600, 615}); err == nil {
		t.Error("NewSlotSchedule: want error for non-multiple-of-30 slot start, got nil")
	}
}

func TestNewSlotScheduleRejectsNonIncreasing(t *testing.T) {
	if _, err := NewSlotSchedule([]float64{630, 600}); err == nil {
		t.Error("NewSlotSchedule: want error for non-increasing slot starts, got nil")
	}
	if _, err := NewSlotSchedule([]float64{600, 600}); err == nil {
		t.Error("NewSlotSchedule: want error for duplicate slot starts, got nil")
	}
}

func TestNewSlotScheduleCopiesInput(t *testing.T) {
	starts := []float64{600, 630}
	s, err := NewSlotSchedule(starts)
	if err != nil {
		t.Fatalf("NewSlotSchedule: %v", err)
	}
	starts[0] = 0
	if s.Starts[0] != 600 {
		t.Error("NewSlotSchedule: mutating caller's slice affected stored schedule")
	}
}

func TestNewOpeningTableValidatesShape(t *testing.T) {
	if _, err := NewOpeningTable([][]bool{{true}}, []bool{true}, 2, 1); err == nil {
		t.Error("NewOpeningTable: want error for row-count mismatch, got nil")
	}
	if _, err := NewOpeningTable([][]bool{{true, true}}, []bool{true}, 1, 2); err == nil {
		t.Error("NewOpeningTable: want error for column-count mismatch, got nil")
	}
	if _, err := NewOpeningTable([][]bool{{true}}, []bool{true, false}, 1, 1); err == nil {
		t.Error("NewOpeningTable: want error for finish_open length mismatch, got nil")
	}
}
