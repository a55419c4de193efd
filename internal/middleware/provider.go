package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lokaserve/internal/models"
)

// LoadProviderProfile resolves the caller's provider profile once per request
// and stores its id in locals. Provider routes mount it after RequireRoles so
// handlers can assume the binding exists.
func LoadProviderProfile(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := c.Locals("userId").(uuid.UUID)
		if !ok {
			return fiber.ErrUnauthorized
		}

		var profile models.ProviderProfile
		err := db.WithContext(c.Context()).
			Select("id").
			Where("user_id = ?", uid).
			First(&profile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusForbidden, "no provider profile for this account")
		}
		if err != nil {
			return fiber.ErrInternalServerError
		}

		c.Locals("providerId", profile.ID)
		return c.Next()
	}
}
