package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/services"
)

type AvailabilityHandler struct {
	Availability *services.AvailabilityService
}

func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: availability}
}

func (h *AvailabilityHandler) List(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	slots, err := h.Availability.List(c.Context(), auth.ProviderID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, slots)
}

func (h *AvailabilityHandler) Create(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	var in services.SlotInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	slot, err := h.Availability.Create(c.Context(), auth, in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, slot)
}

func (h *AvailabilityHandler) Update(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	var in services.SlotInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	slot, err := h.Availability.Update(c.Context(), auth, id, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, slot)
}

func (h *AvailabilityHandler) Delete(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.Availability.Delete(c.Context(), auth, id); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
