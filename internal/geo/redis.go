package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidCoords = errors.New("geo: coordinates out of range")

const providersKey = "providers:locations"

// RedisIndex keeps provider positions in a Redis GEO set so multiple API
// instances see the same index.
type RedisIndex struct {
	rdb *redis.Client
}

func NewRedisIndex(rdb *redis.Client) *RedisIndex {
	return &RedisIndex{rdb: rdb}
}

func memberName(providerID uuid.UUID) string {
	return "provider:" + providerID.String()
}

func parseMember(member string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(member, "provider:")
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid member %q", member)
	}
	return uuid.Parse(raw)
}

func (r *RedisIndex) Upsert(ctx context.Context, providerID uuid.UUID, lat, lng float64) error {
	if !ValidCoords(lat, lng) {
		return ErrInvalidCoords
	}
	return r.rdb.GeoAdd(ctx, providersKey, &redis.GeoLocation{
		Name:      memberName(providerID),
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

func (r *RedisIndex) Remove(ctx context.Context, providerID uuid.UUID) error {
	return r.rdb.ZRem(ctx, providersKey, memberName(providerID)).Err()
}

func (r *RedisIndex) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]Entry, error) {
	if !ValidCoords(lat, lng) {
		return nil, ErrInvalidCoords
	}
	res, err := r.rdb.GeoSearchLocation(ctx, providersKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lng,
			Latitude:   lat,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(res))
	for _, item := range res {
		id, err := parseMember(item.Name)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			ProviderID: id,
			DistanceKm: item.Dist,
			Lat:        item.Latitude,
			Lng:        item.Longitude,
		})
	}
	// Redis already sorts by distance; re-sort for the ID tiebreaker on
	// equidistant members.
	sortEntries(entries)
	return entries, nil
}
