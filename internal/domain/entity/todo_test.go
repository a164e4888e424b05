package entity

import (
	"testing"
	"time"
)

func TestSetCompleted(t *testing.T) {
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := first.Add(time.Hour)

	todo := Todo{Content: "write tests"}

	todo.SetCompleted(true, first)
	if !todo.IsCompleted || todo.CompletedAt == nil || !todo.CompletedAt.Equal(first) {
		t.Fatalf("after completing: %+v", todo)
	}

	// completing again keeps the original timestamp
	todo.SetCompleted(true, later)
	if !todo.CompletedAt.Equal(first) {
		t.Errorf("CompletedAt = %v, want %v", todo.CompletedAt, first)
	}

	todo.SetCompleted(false, later)
	if todo.IsCompleted || todo.CompletedAt != nil {
		t.Errorf("after reopening: %+v", todo)
	}

	// writing false on an open todo keeps completed_at empty
	todo.SetCompleted(false, later)
	if todo.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", todo.CompletedAt)
	}
}
