// Package geo indexes provider locations and answers radius queries. Two
// implementations exist: an in-memory index for single-instance deployments
// and tests, and a Redis GEO index for shared state across instances.
package geo

import (
	"context"

	"github.com/google/uuid"
)

// Entry is a provider within the search radius, distance in kilometres.
type Entry struct {
	ProviderID uuid.UUID
	DistanceKm float64
	Lat        float64
	Lng        float64
}

type Index interface {
	// Upsert records or moves a provider's location.
	Upsert(ctx context.Context, providerID uuid.UUID, lat, lng float64) error
	// Remove drops a provider from the index. Removing an absent provider
	// is not an error.
	Remove(ctx context.Context, providerID uuid.UUID) error
	// Nearby returns providers within radiusKm of the point, sorted by
	// distance ascending with provider ID as tiebreaker. limit <= 0 means
	// no limit.
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]Entry, error)
}
