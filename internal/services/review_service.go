package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewInput struct {
	BookingID uuid.UUID `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

// Create writes a review for a completed booking owned by the caller, then
// recomputes the provider's average rating. The recompute runs after the
// review commits; if it fails the review stands and the failure is logged.
func (s *ReviewService) Create(ctx context.Context, auth Auth, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}

	var review *models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", in.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking", ErrNotFound)
			}
			return err
		}
		if booking.CustomerID != auth.UserID {
			return fmt.Errorf("%w: booking belongs to another customer", ErrForbidden)
		}
		if booking.Status != models.BookingStatusCompleted {
			return fmt.Errorf("%w: booking is %s, reviews require completed",
				ErrInvalidTransition, booking.Status)
		}

		var count int64
		if err := tx.Model(&models.Review{}).
			Where("booking_id = ?", booking.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: booking already reviewed", ErrConflict)
		}

		review = &models.Review{
			BookingID:  booking.ID,
			CustomerID: auth.UserID,
			ProviderID: booking.ProviderID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: booking already reviewed", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeRating(ctx, review.ProviderID); err != nil {
		log.Printf("rating recompute failed provider=%s: %v", review.ProviderID, err)
	}
	return review, nil
}

// Delete is the moderation path. Removing a review re-aggregates the
// provider's rating, falling back to 0 when no reviews remain.
func (s *ReviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.WithContext(ctx).First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review", ErrNotFound)
		}
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}
	if err := s.RecomputeRating(ctx, review.ProviderID); err != nil {
		log.Printf("rating recompute failed provider=%s: %v", review.ProviderID, err)
	}
	return nil
}

// RecomputeRating re-derives the provider's average from all their reviews in
// one statement. Computing the mean inside the UPDATE keeps concurrent
// writers from clobbering each other with stale read-then-write values.
func (s *ReviewService) RecomputeRating(ctx context.Context, providerID uuid.UUID) error {
	return s.db.WithContext(ctx).Exec(
		`UPDATE provider_profiles
		 SET avg_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE provider_id = ?)
		 WHERE id = ?`,
		providerID, providerID,
	).Error
}

func (s *ReviewService) ListForProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) ListForCustomer(ctx context.Context, auth Auth) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", auth.UserID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListAll is the moderation listing.
func (s *ReviewService) ListAll(ctx context.Context, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
