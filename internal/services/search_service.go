package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/geo"
	"lokaserve/internal/models"
)

type SearchService struct {
	db    *gorm.DB
	index geo.Index
}

func NewSearchService(db *gorm.DB, index geo.Index) *SearchService {
	return &SearchService{db: db, index: index}
}

type SearchParams struct {
	Lat      float64
	Lng      float64
	RadiusKm float64

	CategoryID *uint
	MinRating  *float64
	MinPrice   *float64
	MaxPrice   *float64

	Limit  int
	Offset int
}

// ProviderSummary is a search hit: the verified profile plus its distance
// from the query origin.
type ProviderSummary struct {
	models.ProviderProfile
	DistanceKm float64 `json:"distance_km"`
}

func (p *SearchParams) validate() error {
	if !geo.ValidCoords(p.Lat, p.Lng) {
		return fmt.Errorf("%w: lat/lng out of range", ErrInvalidInput)
	}
	if p.RadiusKm < 0.1 || p.RadiusKm > 100 {
		return fmt.Errorf("%w: radius_km must be between 0.1 and 100", ErrInvalidInput)
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return nil
}

// Search queries the geo index for providers in range, hydrates the verified
// profiles in one query, applies the attribute filters, and paginates while
// keeping the index's distance ordering.
func (s *SearchService) Search(ctx context.Context, p SearchParams) ([]ProviderSummary, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	// No Count on the index query: pagination and filters are applied
	// after hydration, so the index must return the full radius set.
	entries, err := s.index.Nearby(ctx, p.Lat, p.Lng, p.RadiusKm, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: geo index: %v", ErrUnavailable, err)
	}
	if len(entries) == 0 {
		return []ProviderSummary{}, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	distance := make(map[uuid.UUID]float64, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProviderID)
		distance[e.ProviderID] = e.DistanceKm
	}

	q := s.db.WithContext(ctx).
		Preload("User").Preload("Category").
		Where("id IN ? AND is_verified = ?", ids, true)
	if p.CategoryID != nil {
		q = q.Where("category_id = ?", *p.CategoryID)
	}
	if p.MinRating != nil {
		q = q.Where("avg_rating >= ?", *p.MinRating)
	}
	if p.MinPrice != nil {
		q = q.Where("base_price >= ?", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		q = q.Where("base_price <= ?", *p.MaxPrice)
	}

	var profiles []models.ProviderProfile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.ProviderProfile, len(profiles))
	for _, prof := range profiles {
		byID[prof.ID] = prof
	}

	// Walk entries in index order so results stay sorted by distance.
	results := make([]ProviderSummary, 0, len(profiles))
	for _, e := range entries {
		prof, ok := byID[e.ProviderID]
		if !ok {
			continue
		}
		results = append(results, ProviderSummary{
			ProviderProfile: prof,
			DistanceKm:      distance[e.ProviderID],
		})
	}

	if p.Offset >= len(results) {
		return []ProviderSummary{}, nil
	}
	results = results[p.Offset:]
	if len(results) > p.Limit {
		results = results[:p.Limit]
	}
	return results, nil
}

// SeedIndex loads every located provider into the geo index. Called once at
// startup; afterwards profile updates write through. Verification is not a
// criterion here — the hydration query filters unverified profiles, so
// verifying a provider never requires an index write.
func (s *SearchService) SeedIndex(ctx context.Context) (int, error) {
	var profiles []models.ProviderProfile
	err := s.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&profiles).Error
	if err != nil {
		return 0, err
	}
	n := 0
	for _, prof := range profiles {
		if !prof.HasLocation() {
			continue
		}
		if err := s.index.Upsert(ctx, prof.ID, *prof.Latitude, *prof.Longitude); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
