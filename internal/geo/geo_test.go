package geo

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			lat1:      -6.2088, lng1: 106.8456,
			lat2:      -6.2088, lng2: 106.8456,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Jakarta Monas to Blok M (~8km)",
			lat1:      -6.1754, lng1: 106.8272,
			lat2:      -6.2437, lng2: 106.7994,
			wantKm:    8.2,
			tolerance: 1.0,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			lat1:      40.7128, lng1: -74.0060,
			lat2:      34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := HaversineKm(-6.2, 106.8, -6.3, 106.9)
	d2 := HaversineKm(-6.3, 106.9, -6.2, 106.8)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestMemoryIndex_NearbyFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	center := struct{ lat, lng float64 }{-6.2088, 106.8456}

	near := uuid.New()
	mid := uuid.New()
	far := uuid.New()

	if err := idx.Upsert(ctx, near, -6.2090, 106.8458); err != nil {
		t.Fatalf("upsert near: %v", err)
	}
	if err := idx.Upsert(ctx, mid, -6.2300, 106.8456); err != nil {
		t.Fatalf("upsert mid: %v", err)
	}
	if err := idx.Upsert(ctx, far, -6.9175, 107.6191); err != nil { // Bandung, ~120km away
		t.Fatalf("upsert far: %v", err)
	}

	got, err := idx.Nearby(ctx, center.lat, center.lng, 10, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries within 10km, got %d", len(got))
	}
	if got[0].ProviderID != near || got[1].ProviderID != mid {
		t.Errorf("unexpected order: %v then %v", got[0].ProviderID, got[1].ProviderID)
	}
	if got[0].DistanceKm > got[1].DistanceKm {
		t.Errorf("results not sorted by distance: %f > %f", got[0].DistanceKm, got[1].DistanceKm)
	}
}

func TestMemoryIndex_RadiusBoundaryInclusive(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	id := uuid.New()
	if err := idx.Upsert(ctx, id, -6.2300, 106.8456); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	d := HaversineKm(-6.2088, 106.8456, -6.2300, 106.8456)

	got, err := idx.Nearby(ctx, -6.2088, 106.8456, d, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("provider exactly at radius should be included, got %d entries", len(got))
	}
}

func TestMemoryIndex_Limit(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	for i := 0; i < 5; i++ {
		if err := idx.Upsert(ctx, uuid.New(), -6.2088+float64(i)*0.001, 106.8456); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	got, err := idx.Nearby(ctx, -6.2088, 106.8456, 50, 3)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected limit of 3, got %d", len(got))
	}
}

func TestMemoryIndex_UpsertMovesProvider(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	id := uuid.New()
	if err := idx.Upsert(ctx, id, -6.9175, 107.6191); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := idx.Upsert(ctx, id, -6.2090, 106.8458); err != nil {
		t.Fatalf("move: %v", err)
	}

	got, err := idx.Nearby(ctx, -6.2088, 106.8456, 5, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 1 || got[0].ProviderID != id {
		t.Fatalf("expected moved provider within 5km, got %v", got)
	}
}

func TestMemoryIndex_Remove(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	id := uuid.New()
	if err := idx.Upsert(ctx, id, -6.2090, 106.8458); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := idx.Remove(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := idx.Remove(ctx, uuid.New()); err != nil {
		t.Fatalf("removing absent provider should not error: %v", err)
	}

	got, err := idx.Nearby(ctx, -6.2088, 106.8456, 100, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty index after removal, got %d entries", len(got))
	}
}

func TestMemoryIndex_RejectsInvalidCoords(t *testing.T) {
	ctx := context.Background()
	idx := NewMemoryIndex()

	if err := idx.Upsert(ctx, uuid.New(), 91, 0); err == nil {
		t.Error("expected error for latitude out of range")
	}
	if err := idx.Upsert(ctx, uuid.New(), 0, 181); err == nil {
		t.Error("expected error for longitude out of range")
	}
	if _, err := idx.Nearby(ctx, -91, 0, 10, 0); err == nil {
		t.Error("expected error for query point out of range")
	}
}

func TestParseMember(t *testing.T) {
	id := uuid.New()
	got, err := parseMember(memberName(id))
	if err != nil {
		t.Fatalf("parseMember: %v", err)
	}
	if got != id {
		t.Errorf("round trip mismatch: %s != %s", got, id)
	}

	if _, err := parseMember("driver:123"); err == nil {
		t.Error("expected error for foreign member prefix")
	}
	if _, err := parseMember("provider:not-a-uuid"); err == nil {
		t.Error("expected error for malformed uuid")
	}
}
