package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

// UserService holds the admin-side user moderation operations.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context, role string, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	q := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset)
	if role != "" {
		if !models.ValidRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
		}
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("ProviderProfile").
		First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRole changes a user's role. Admins cannot change their own role, and an
// upgrade to provider creates an empty unverified profile so the user can
// complete it and enter the moderation queue.
func (s *UserService) SetRole(ctx context.Context, auth Auth, userID uuid.UUID, role string) (*models.User, error) {
	if !auth.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if userID == auth.UserID {
		return nil, fmt.Errorf("%w: cannot change your own role", ErrForbidden)
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user", ErrNotFound)
			}
			return err
		}
		newRole := models.Role(role)
		if user.Role == newRole {
			return nil
		}
		if err := tx.Model(&user).Update("role", newRole).Error; err != nil {
			return err
		}
		user.Role = newRole

		if newRole == models.RoleProvider {
			var count int64
			if err := tx.Model(&models.ProviderProfile{}).
				Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				profile := &models.ProviderProfile{UserID: user.ID}
				if err := tx.Create(profile).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetActive toggles account access. Self-deactivation is blocked so an admin
// cannot lock themselves out.
func (s *UserService) SetActive(ctx context.Context, auth Auth, userID uuid.UUID, active bool) (*models.User, error) {
	if !auth.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if userID == auth.UserID && !active {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", ErrForbidden)
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	user.IsActive = active
	return &user, nil
}
