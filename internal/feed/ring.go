// Package feed holds the fixed-size activity log backing the UI feed.
package feed

import (
	"sync"

	"airport_director/internal/models"
)

// Ring is a circular buffer of log entries. Once full, new entries overwrite
// the oldest ones.
type Ring struct {
	mu      sync.RWMutex
	entries []models.LogEntry
	head    int
	count   int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]models.LogEntry, capacity)}
}

// Push appends an entry, evicting the oldest when the ring is full.
func (r *Ring) Push(entry models.LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.head] = entry
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// Newest returns the stored entries, newest first.
func (r *Ring) Newest() []models.LogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.LogEntry, 0, r.count)
	for i := 1; i <= r.count; i++ {
		idx := (r.head - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}
