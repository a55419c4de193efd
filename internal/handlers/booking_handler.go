package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/models"
	"lokaserve/internal/services"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type createBookingReq struct {
	ProviderID     string `json:"provider_id"`
	ScheduledFor   string `json:"scheduled_for"` // RFC 3339
	ServiceAddress string `json:"service_address"`
	Notes          string `json:"notes"`
}

// --- customer surface ---------------------------------------------------

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	var req createBookingReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return badParam(c, "provider_id")
	}
	at, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return badParam(c, "scheduled_for")
	}

	b, err := h.Bookings.Create(c.Context(), auth, services.CreateBookingInput{
		ProviderID:     providerID,
		ScheduledFor:   at,
		ServiceAddress: req.ServiceAddress,
		Notes:          req.Notes,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, b)
}

func (h *BookingHandler) ListMine(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	bookings, err := h.Bookings.ListForCustomer(c.Context(), auth, c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, bookings)
}

func (h *BookingHandler) GetMine(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	b, err := h.Bookings.GetForCustomer(c.Context(), auth, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, b)
}

func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	b, err := h.Bookings.Cancel(c.Context(), auth, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, b)
}

// --- provider surface ---------------------------------------------------

func (h *BookingHandler) ListForProvider(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	bookings, err := h.Bookings.ListForProvider(c.Context(), auth, c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, bookings)
}

func (h *BookingHandler) GetForProvider(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	b, err := h.Bookings.GetForProvider(c.Context(), auth, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, b)
}

func (h *BookingHandler) Accept(c *fiber.Ctx) error {
	return h.providerAction(c, h.Bookings.Accept)
}

func (h *BookingHandler) Reject(c *fiber.Ctx) error {
	return h.providerAction(c, h.Bookings.Reject)
}

func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	return h.providerAction(c, h.Bookings.Complete)
}

type rescheduleReq struct {
	ScheduledFor string `json:"scheduled_for"` // RFC 3339
}

func (h *BookingHandler) Reschedule(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	var req rescheduleReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	at, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return badParam(c, "scheduled_for")
	}

	b, err := h.Bookings.Reschedule(c.Context(), auth, id, at)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, b)
}

func (h *BookingHandler) providerAction(
	c *fiber.Ctx,
	action func(ctx context.Context, auth services.Auth, id uuid.UUID) (*models.Booking, error),
) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	b, err := action(c.Context(), auth, id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, b)
}
