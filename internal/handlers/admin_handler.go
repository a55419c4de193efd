package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/services"
)

type AdminHandler struct {
	Users      *services.UserService
	Providers  *services.ProviderService
	Dashboards *services.DashboardService
}

func NewAdminHandler(users *services.UserService, providers *services.ProviderService, dashboards *services.DashboardService) *AdminHandler {
	return &AdminHandler{Users: users, Providers: providers, Dashboards: dashboards}
}

// --- users -----------------------------------------------------------------

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.Context(), c.Query("role"),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, users)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	user, err := h.Users.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

type setRoleReq struct {
	Role string `json:"role"`
}

func (h *AdminHandler) SetUserRole(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	var req setRoleReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.Users.SetRole(c.Context(), auth, id, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

type setActiveReq struct {
	IsActive bool `json:"is_active"`
}

func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	var req setActiveReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.Users.SetActive(c.Context(), auth, id, req.IsActive)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// --- provider moderation -----------------------------------------------------

func (h *AdminHandler) ListPendingProviders(c *fiber.Ctx) error {
	providers, err := h.Providers.ListPending(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, providers)
}

type setVerifiedReq struct {
	IsVerified bool `json:"is_verified"`
}

func (h *AdminHandler) SetProviderVerified(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	var req setVerifiedReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	provider, err := h.Providers.SetVerified(c.Context(), id, req.IsVerified)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, provider)
}

// --- platform overview --------------------------------------------------------

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Dashboards.Admin(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, stats)
}

func (h *AdminHandler) GetBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	booking, err := h.Dashboards.AdminGetBooking(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, booking)
}

func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.Dashboards.AdminListBookings(c.Context(), c.Query("status"),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, bookings)
}
