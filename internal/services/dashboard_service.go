package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type ProviderDashboard struct {
	StatusCounts  map[models.BookingStatus]int64 `json:"status_counts"`
	Earnings      float64                        `json:"earnings"`
	AvgRating     float64                        `json:"avg_rating"`
	ReviewCount   int64                          `json:"review_count"`
	Upcoming      []models.Booking               `json:"upcoming"`
	RecentReviews []models.Review                `json:"recent_reviews"`
}

func (s *DashboardService) Provider(ctx context.Context, auth Auth) (*ProviderDashboard, error) {
	db := s.db.WithContext(ctx)
	out := &ProviderDashboard{
		StatusCounts: make(map[models.BookingStatus]int64),
	}

	type statusCount struct {
		Status models.BookingStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("provider_id = ?", auth.ProviderID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		out.StatusCounts[c.Status] = c.Count
	}

	// Earnings are the summed price snapshots of completed work.
	if err := db.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ?", auth.ProviderID, models.BookingStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&out.Earnings).Error; err != nil {
		return nil, err
	}

	var profile models.ProviderProfile
	if err := db.First(&profile, "id = ?", auth.ProviderID).Error; err != nil {
		return nil, err
	}
	out.AvgRating = profile.AvgRating

	if err := db.Model(&models.Review{}).
		Where("provider_id = ?", auth.ProviderID).
		Count(&out.ReviewCount).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Customer").
		Where("provider_id = ? AND status IN ? AND scheduled_for > ?",
			auth.ProviderID,
			[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusRescheduled},
			time.Now()).
		Order("scheduled_for").
		Limit(5).
		Find(&out.Upcoming).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Customer").
		Where("provider_id = ?", auth.ProviderID).
		Order("created_at DESC").
		Limit(5).
		Find(&out.RecentReviews).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type AdminDashboard struct {
	TotalUsers        int64                          `json:"total_users"`
	TotalProviders    int64                          `json:"total_providers"`
	PendingProviders  int64                          `json:"pending_providers"`
	TotalBookings     int64                          `json:"total_bookings"`
	BookingsByStatus  map[models.BookingStatus]int64 `json:"bookings_by_status"`
	TotalReviews      int64                          `json:"total_reviews"`
	CompletedEarnings float64                        `json:"completed_earnings"`
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	db := s.db.WithContext(ctx)
	out := &AdminDashboard{
		BookingsByStatus: make(map[models.BookingStatus]int64),
	}

	if err := db.Model(&models.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProviderProfile{}).Count(&out.TotalProviders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProviderProfile{}).
		Where("is_verified = ?", false).
		Count(&out.PendingProviders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).Count(&out.TotalBookings).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status models.BookingStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		out.BookingsByStatus[c.Status] = c.Count
	}

	if err := db.Model(&models.Review{}).Count(&out.TotalReviews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&out.CompletedEarnings).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AdminGetBooking is the unscoped read for moderation.
func (s *DashboardService) AdminGetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Customer").Preload("Provider").Preload("Provider.User").
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// AdminListBookings is the moderation booking feed.
func (s *DashboardService) AdminListBookings(ctx context.Context, status string, limit, offset int) ([]models.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	q := s.db.WithContext(ctx).
		Preload("Customer").Preload("Provider").
		Order("created_at DESC").
		Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
