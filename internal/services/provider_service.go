package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lokaserve/internal/geo"
	"lokaserve/internal/models"
)

type ProviderService struct {
	db    *gorm.DB
	index geo.Index
}

func NewProviderService(db *gorm.DB, index geo.Index) *ProviderService {
	return &ProviderService{db: db, index: index}
}

type UpdateProfileInput struct {
	Bio        *string         `json:"bio"`
	CategoryID *uint           `json:"category_id"`
	BasePrice  *float64        `json:"base_price"`
	Latitude   *float64        `json:"latitude"`
	Longitude  *float64        `json:"longitude"`
	Portfolio  *datatypes.JSON `json:"portfolio"`
}

func (s *ProviderService) GetOwn(ctx context.Context, auth Auth) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	err := s.db.WithContext(ctx).
		Preload("Category").
		First(&profile, "id = ?", auth.ProviderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: provider profile", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies the present fields. Location changes write through to the
// geo index so search sees them immediately.
func (s *ProviderService) Update(ctx context.Context, auth Auth, in UpdateProfileInput) (*models.ProviderProfile, error) {
	if !auth.IsProvider() {
		return nil, fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	if in.BasePrice != nil && *in.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base_price must be >= 0", ErrInvalidInput)
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidInput)
	}
	if in.Latitude != nil && !geo.ValidCoords(*in.Latitude, *in.Longitude) {
		return nil, fmt.Errorf("%w: lat/lng out of range", ErrInvalidInput)
	}

	var profile models.ProviderProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, "id = ?", auth.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: provider profile", ErrNotFound)
			}
			return err
		}
		if in.CategoryID != nil {
			var count int64
			if err := tx.Model(&models.Category{}).
				Where("id = ?", *in.CategoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: category", ErrNotFound)
			}
			profile.CategoryID = in.CategoryID
		}
		if in.Bio != nil {
			profile.Bio = *in.Bio
		}
		if in.BasePrice != nil {
			profile.BasePrice = *in.BasePrice
		}
		if in.Latitude != nil {
			profile.Latitude = in.Latitude
			profile.Longitude = in.Longitude
		}
		if in.Portfolio != nil {
			profile.Portfolio = *in.Portfolio
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	if in.Latitude != nil {
		if err := s.index.Upsert(ctx, profile.ID, *profile.Latitude, *profile.Longitude); err != nil {
			log.Printf("geo index upsert failed provider=%s: %v", profile.ID, err)
		}
	}
	return &profile, nil
}

// PublicProfile is the customer-facing provider page: the verified profile
// plus its weekly availability and most recent reviews.
type PublicProfile struct {
	models.ProviderProfile
	Availability []models.AvailabilitySlot `json:"availability"`
	Reviews      []models.Review           `json:"reviews"`
}

func (s *ProviderService) GetPublic(ctx context.Context, providerID uuid.UUID) (*PublicProfile, error) {
	var profile models.ProviderProfile
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Category").
		Where("id = ? AND is_verified = ?", providerID, true).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: provider", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	out := &PublicProfile{ProviderProfile: profile}
	if err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("day_of_week, start_time").
		Find(&out.Availability).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(10).
		Find(&out.Reviews).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListPending returns unverified profiles awaiting moderation.
func (s *ProviderService) ListPending(ctx context.Context) ([]models.ProviderProfile, error) {
	var profiles []models.ProviderProfile
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Category").
		Where("is_verified = ?", false).
		Order("created_at").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *ProviderService) SetVerified(ctx context.Context, providerID uuid.UUID, verified bool) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: provider", ErrNotFound)
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&profile).
		Update("is_verified", verified).Error; err != nil {
		return nil, err
	}
	profile.IsVerified = verified
	return &profile, nil
}
