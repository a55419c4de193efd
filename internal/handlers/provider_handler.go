package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lokaserve/internal/services"
)

type ProviderHandler struct {
	Providers  *services.ProviderService
	Dashboards *services.DashboardService
}

func NewProviderHandler(providers *services.ProviderService, dashboards *services.DashboardService) *ProviderHandler {
	return &ProviderHandler{Providers: providers, Dashboards: dashboards}
}

func (h *ProviderHandler) GetProfile(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	profile, err := h.Providers.GetOwn(c.Context(), auth)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}

func (h *ProviderHandler) UpdateProfile(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	var in services.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	profile, err := h.Providers.Update(c.Context(), auth, in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}

func (h *ProviderHandler) Dashboard(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	stats, err := h.Dashboards.Provider(c.Context(), auth)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, stats)
}
