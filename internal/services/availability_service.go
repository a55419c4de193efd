package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

type SlotInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// validate parses the input and returns start/end as minutes since midnight.
func (in SlotInput) validate() (startMin, endMin int, err error) {
	if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
		return 0, 0, fmt.Errorf("%w: day_of_week must be 0 (Sunday) through 6", ErrInvalidInput)
	}
	startMin, err = models.MinuteOfDay(in.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
	}
	endMin, err = models.MinuteOfDay(in.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	return startMin, endMin, nil
}

func (s *AvailabilityService) List(ctx context.Context, providerID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := s.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("day_of_week, start_time").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *AvailabilityService) Create(ctx context.Context, auth Auth, in SlotInput) (*models.AvailabilitySlot, error) {
	if !auth.IsProvider() {
		return nil, fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	startMin, endMin, err := in.validate()
	if err != nil {
		return nil, err
	}

	slot := &models.AvailabilitySlot{
		ProviderID: auth.ProviderID,
		DayOfWeek:  in.DayOfWeek,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkOverlap(tx, auth.ProviderID, in.DayOfWeek, startMin, endMin, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(slot).Error
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *AvailabilityService) Update(ctx context.Context, auth Auth, slotID uuid.UUID, in SlotInput) (*models.AvailabilitySlot, error) {
	if !auth.IsProvider() {
		return nil, fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	startMin, endMin, err := in.validate()
	if err != nil {
		return nil, err
	}

	var slot models.AvailabilitySlot
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND provider_id = ?", slotID, auth.ProviderID).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: availability slot", ErrNotFound)
			}
			return err
		}
		if err := s.checkOverlap(tx, auth.ProviderID, in.DayOfWeek, startMin, endMin, slot.ID); err != nil {
			return err
		}
		slot.DayOfWeek = in.DayOfWeek
		slot.StartTime = in.StartTime
		slot.EndTime = in.EndTime
		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *AvailabilityService) Delete(ctx context.Context, auth Auth, slotID uuid.UUID) error {
	if !auth.IsProvider() {
		return fmt.Errorf("%w: provider profile required", ErrForbidden)
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", slotID, auth.ProviderID).
		Delete(&models.AvailabilitySlot{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: availability slot", ErrNotFound)
	}
	return nil
}

// checkOverlap scans the provider's slots for the given day and rejects any
// half-open interval intersection. excludeID skips the slot being updated.
func (s *AvailabilityService) checkOverlap(tx *gorm.DB, providerID uuid.UUID, day, startMin, endMin int, excludeID uuid.UUID) error {
	var existing []models.AvailabilitySlot
	q := tx.Where("provider_id = ? AND day_of_week = ?", providerID, day)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return err
	}
	for _, e := range existing {
		eStart, err := models.MinuteOfDay(e.StartTime)
		if err != nil {
			continue
		}
		eEnd, err := models.MinuteOfDay(e.EndTime)
		if err != nil {
			continue
		}
		if models.Overlaps(startMin, endMin, eStart, eEnd) {
			return fmt.Errorf("%w: overlaps existing slot %s-%s", ErrConflict, e.StartTime, e.EndTime)
		}
	}
	return nil
}
