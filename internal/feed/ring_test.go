package feed

import (
	"testing"

	"airport_director/internal/models"
)

func TestRingNewestFirst(t *testing.T) {
	r := NewRing(3)
	if r.Len() != 0 || len(r.Newest()) != 0 {
		t.Fatalf("fresh ring not empty")
	}

	r.Push(models.LogEntry{Tick: 1, Message: "one"})
	r.Push(models.LogEntry{Tick: 2, Message: "two"})
	r.Push(models.LogEntry{Tick: 3, Message: "three"})

	got := r.Newest()
	if len(got) != 3 || got[0].Message != "three" || got[2].Message != "one" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	r := NewRing(3)
	for i := 1; i <= 5; i++ {
		r.Push(models.LogEntry{Tick: i})
	}
	if r.Len() != 3 {
		t.Fatalf("len = %d, want 3", r.Len())
	}
	got := r.Newest()
	if got[0].Tick != 5 || got[1].Tick != 4 || got[2].Tick != 3 {
		t.Fatalf("eviction order wrong: %v", got)
	}
}

func TestRingMinimumCapacity(t *testing.T) {
	r := NewRing(0)
	r.Push(models.LogEntry{Tick: 1})
	r.Push(models.LogEntry{Tick: 2})
	got := r.Newest()
	if len(got) != 1 || got[0].Tick != 2 {
		t.Fatalf("zero-capacity ring misbehaved: %v", got)
	}
}
