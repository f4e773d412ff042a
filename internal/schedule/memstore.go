package schedule

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store keeping a per-venue index of active
// reservations. A single mutex guards the check-then-insert window, which
// makes admission atomic the same way the SQL store's per-venue lock does.
// Used by tests and small single-process deployments.
type MemoryStore struct {
	mu      sync.Mutex
	byID    map[string]*Reservation
	byKey   map[string]string // idempotency key -> reservation id
	byVenue map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*Reservation),
		byKey:   make(map[string]string),
		byVenue: make(map[string][]string),
	}
}

func (m *MemoryStore) InsertIfNoConflict(_ context.Context, res *Reservation) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res.IdempotencyKey != "" {
		if id, ok := m.byKey[res.IdempotencyKey]; ok {
			*res = *m.byID[id]
			return nil, nil
		}
	}

	conflicts := m.conflictsLocked(res.Interval)
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	stored := *res
	m.byID[stored.ID] = &stored
	m.byVenue[stored.Interval.Venue] = append(m.byVenue[stored.Interval.Venue], stored.ID)
	if stored.IdempotencyKey != "" {
		m.byKey[stored.IdempotencyKey] = stored.ID
	}
	return nil, nil
}

func (m *MemoryStore) MarkCancelled(_ context.Context, id string) (*Reservation, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.byID[id]
	if !ok {
		return nil, false, ErrNotFound
	}
	if res.Status == StatusCancelled {
		out := *res
		return &out, false, nil
	}
	res.Status = StatusCancelled
	res.UpdatedAt = time.Now().UTC()
	out := *res
	return &out, true, nil
}

func (m *MemoryStore) FindConflicts(_ context.Context, iv Interval) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflictsLocked(iv), nil
}

func (m *MemoryStore) ListByVenue(_ context.Context, venue string, from, to time.Time) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Reservation
	for _, id := range m.byVenue[venue] {
		res := m.byID[id]
		if !res.Active() {
			continue
		}
		if !from.IsZero() && !res.Interval.End.After(from) {
			continue
		}
		if !to.IsZero() && !res.Interval.Start.Before(to) {
			continue
		}
		out = append(out, *res)
	}
	sortByStart(out)
	return out, nil
}

// UpdateStatus transitions a reservation between lifecycle statuses. Used by
// the rollover job when running against the in-memory store.
func (m *MemoryStore) UpdateStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryStore) conflictsLocked(iv Interval) []Reservation {
	var conflicts []Reservation
	for _, id := range m.byVenue[iv.Venue] {
		res := m.byID[id]
		if res.Active() && Overlaps(res.Interval, iv) {
			conflicts = append(conflicts, *res)
		}
	}
	sortByStart(conflicts)
	return conflicts
}

func sortByStart(rs []Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Interval.Start.Before(rs[j].Interval.Start)
	})
}
