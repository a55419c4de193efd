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

type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

type CreateBookingInput struct {
	ProviderID     uuid.UUID `json:"provider_id"`
	ScheduledFor   time.Time `json:"scheduled_for"`
	ServiceAddress string    `json:"service_address"`
	Notes          string    `json:"notes"`
}

// Create opens a booking in pending status. The provider must be verified,
// the instant must be in the future and inside one of the provider's
// availability slots, and no other active booking may hold the same instant.
// Price is snapshotted from the provider's current base price.
func (s *BookingService) Create(ctx context.Context, auth Auth, in CreateBookingInput) (*models.Booking, error) {
	if in.ServiceAddress == "" {
		return nil, fmt.Errorf("%w: service_address is required", ErrInvalidInput)
	}
	if !in.ScheduledFor.After(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled_for must be in the future", ErrInvalidInput)
	}

	var booking *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.ProviderProfile
		if err := tx.First(&provider, "id = ?", in.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: provider", ErrNotFound)
			}
			return err
		}
		if !provider.IsVerified {
			return fmt.Errorf("%w: provider is not verified", ErrInvalidInput)
		}

		if err := checkWithinAvailability(tx, provider.ID, in.ScheduledFor); err != nil {
			return err
		}
		if err := checkInstantFree(tx, provider.ID, in.ScheduledFor); err != nil {
			return err
		}

		booking = &models.Booking{
			CustomerID:     auth.UserID,
			ProviderID:     provider.ID,
			Status:         models.BookingStatusPending,
			ScheduledFor:   in.ScheduledFor,
			ServiceAddress: in.ServiceAddress,
			TotalPrice:     provider.BasePrice,
			Notes:          in.Notes,
		}
		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: provider already booked at this time", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Accept moves pending → confirmed. Re-checks the instant is still free so a
// provider cannot confirm two pending bookings that raced onto the same slot.
func (s *BookingService) Accept(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	return s.providerTransition(ctx, auth, bookingID, models.BookingStatusConfirmed,
		[]models.BookingStatus{models.BookingStatusPending},
		func(tx *gorm.DB, b *models.Booking) error {
			return checkInstantFreeExcept(tx, b.ProviderID, b.ScheduledFor, b.ID)
		})
}

// Reject moves pending → cancelled. No conflict check: it frees a slot.
func (s *BookingService) Reject(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	return s.providerTransition(ctx, auth, bookingID, models.BookingStatusCancelled,
		[]models.BookingStatus{models.BookingStatusPending}, nil)
}

// Complete moves confirmed/rescheduled → completed. Irreversible.
func (s *BookingService) Complete(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	return s.providerTransition(ctx, auth, bookingID, models.BookingStatusCompleted,
		[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusRescheduled}, nil)
}

// Reschedule replaces the scheduled instant and moves the booking to
// rescheduled. The new instant faces the same future/availability/conflict
// checks as creation. No schedule history is kept.
func (s *BookingService) Reschedule(ctx context.Context, auth Auth, bookingID uuid.UUID, newTime time.Time) (*models.Booking, error) {
	if !auth.IsProvider() {
		return nil, fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	if !newTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled_for must be in the future", ErrInvalidInput)
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND provider_id = ?", bookingID, auth.ProviderID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking", ErrNotFound)
			}
			return err
		}
		if !models.CanTransition(booking.Status, models.BookingStatusRescheduled) {
			return fmt.Errorf("%w: cannot reschedule from %s", ErrInvalidTransition, booking.Status)
		}

		if err := checkWithinAvailability(tx, booking.ProviderID, newTime); err != nil {
			return err
		}
		if err := checkInstantFreeExcept(tx, booking.ProviderID, newTime, booking.ID); err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Updates(map[string]interface{}{
				"status":        models.BookingStatusRescheduled,
				"scheduled_for": newTime,
			})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: provider already booked at this time", ErrConflict)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking changed concurrently", ErrConflict)
		}
		booking.Status = models.BookingStatusRescheduled
		booking.ScheduledFor = newTime
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel is the customer-side exit, allowed from pending and confirmed only.
// A rescheduled booking cannot be cancelled by the customer; this asymmetry
// is long-standing behavior that callers depend on.
func (s *BookingService) Cancel(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND customer_id = ?", bookingID, auth.UserID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking", ErrNotFound)
			}
			return err
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return fmt.Errorf("%w: cannot cancel from %s, requires pending or confirmed",
				ErrInvalidTransition, booking.Status)
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", models.BookingStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking changed concurrently", ErrConflict)
		}
		booking.Status = models.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) GetForCustomer(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Provider").Preload("Provider.User").
		Where("id = ? AND customer_id = ?", bookingID, auth.UserID).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) GetForProvider(ctx context.Context, auth Auth, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ? AND provider_id = ?", bookingID, auth.ProviderID).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: booking", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) ListForCustomer(ctx context.Context, auth Auth, status string) ([]models.Booking, error) {
	return s.list(ctx, "customer_id", auth.UserID, status, "Provider")
}

func (s *BookingService) ListForProvider(ctx context.Context, auth Auth, status string) ([]models.Booking, error) {
	return s.list(ctx, "provider_id", auth.ProviderID, status, "Customer")
}

func (s *BookingService) list(ctx context.Context, ownerCol string, ownerID uuid.UUID, status, preload string) ([]models.Booking, error) {
	q := s.db.WithContext(ctx).Preload(preload).
		Where(ownerCol+" = ?", ownerID).
		Order("scheduled_for DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// providerTransition is the shared guard-then-write path for accept, reject
// and complete. extraCheck runs inside the transaction before the write.
func (s *BookingService) providerTransition(
	ctx context.Context,
	auth Auth,
	bookingID uuid.UUID,
	to models.BookingStatus,
	allowedFrom []models.BookingStatus,
	extraCheck func(tx *gorm.DB, b *models.Booking) error,
) (*models.Booking, error) {
	if !auth.IsProvider() {
		return nil, fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND provider_id = ?", bookingID, auth.ProviderID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking", ErrNotFound)
			}
			return err
		}
		allowed := false
		for _, from := range allowedFrom {
			if booking.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: cannot move %s booking to %s",
				ErrInvalidTransition, booking.Status, to)
		}
		if extraCheck != nil {
			if err := extraCheck(tx, &booking); err != nil {
				return err
			}
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, booking.Status).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: booking changed concurrently", ErrConflict)
		}
		booking.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// checkWithinAvailability verifies the instant lands inside one of the
// provider's weekly slots. Weekday and clock time are taken in UTC with the
// Sunday=0 convention; containment is inclusive at both slot edges.
func checkWithinAvailability(tx *gorm.DB, providerID uuid.UUID, at time.Time) error {
	utc := at.UTC()
	day := int(utc.Weekday())
	minute := utc.Hour()*60 + utc.Minute()

	var slots []models.AvailabilitySlot
	if err := tx.Where("provider_id = ? AND day_of_week = ?", providerID, day).
		Find(&slots).Error; err != nil {
		return err
	}
	for _, slot := range slots {
		start, err := models.MinuteOfDay(slot.StartTime)
		if err != nil {
			continue
		}
		end, err := models.MinuteOfDay(slot.EndTime)
		if err != nil {
			continue
		}
		if minute >= start && minute <= end {
			return nil
		}
	}
	return fmt.Errorf("%w: requested time is outside the provider's availability", ErrInvalidInput)
}

func checkInstantFree(tx *gorm.DB, providerID uuid.UUID, at time.Time) error {
	return checkInstantFreeExcept(tx, providerID, at, uuid.Nil)
}

// checkInstantFreeExcept enforces at most one active booking per provider per
// exact instant. The partial unique index backs this up against writers that
// race past the read.
func checkInstantFreeExcept(tx *gorm.DB, providerID uuid.UUID, at time.Time, exceptID uuid.UUID) error {
	var count int64
	q := tx.Model(&models.Booking{}).
		Where("provider_id = ? AND scheduled_for = ? AND status IN ?",
			providerID, at, models.ActiveStatuses)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: provider already booked at this time", ErrConflict)
	}
	return nil
}
