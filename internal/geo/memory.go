package geo

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type point struct {
	lat, lng float64
}

// MemoryIndex is a process-local Index backed by a map and a full scan per
// query. Fine for the provider counts a single city sees.
type MemoryIndex struct {
	mu     sync.RWMutex
	points map[uuid.UUID]point
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{points: make(map[uuid.UUID]point)}
}

func (m *MemoryIndex) Upsert(_ context.Context, providerID uuid.UUID, lat, lng float64) error {
	if !ValidCoords(lat, lng) {
		return ErrInvalidCoords
	}
	m.mu.Lock()
	m.points[providerID] = point{lat: lat, lng: lng}
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Remove(_ context.Context, providerID uuid.UUID) error {
	m.mu.Lock()
	delete(m.points, providerID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryIndex) Nearby(_ context.Context, lat, lng, radiusKm float64, limit int) ([]Entry, error) {
	if !ValidCoords(lat, lng) {
		return nil, ErrInvalidCoords
	}
	m.mu.RLock()
	entries := make([]Entry, 0, len(m.points))
	for id, p := range m.points {
		d := HaversineKm(lat, lng, p.lat, p.lng)
		if d <= radiusKm {
			entries = append(entries, Entry{ProviderID: id, DistanceKm: d, Lat: p.lat, Lng: p.lng})
		}
	}
	m.mu.RUnlock()

	sortEntries(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// sortEntries orders by distance ascending, provider ID as tiebreaker so
// equidistant results are stable across calls. Insertion sort is fine for
// the result sizes we see.
func sortEntries(entries []Entry) {
	for i := 1; i < len(entries); i++ {
		key := entries[i]
		j := i - 1
		for j >= 0 && less(key, entries[j]) {
			entries[j+1] = entries[j]
			j--
		}
		entries[j+1] = key
	}
}

func less(a, b Entry) bool {
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.ProviderID.String() < b.ProviderID.String()
}
