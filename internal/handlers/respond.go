package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/models"
	"lokaserve/internal/services"
)

// getAuth assembles the typed caller identity from the locals set by the
// middleware chain. providerId is present only on provider routes.
func getAuth(c *fiber.Ctx) (services.Auth, error) {
	uid, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return services.Auth{}, fiber.ErrUnauthorized
	}
	role, _ := c.Locals("role").(string)
	auth := services.Auth{UserID: uid, Role: models.Role(role)}
	if pid, ok := c.Locals("providerId").(uuid.UUID); ok {
		auth.ProviderID = pid
	}
	return auth, nil
}

// fail maps a service error kind onto an HTTP status with the standard
// response envelope.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "invalid body",
	})
}

func badParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "invalid " + name,
	})
}
