package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/services"
)

type SearchHandler struct {
	Search    *services.SearchService
	Providers *services.ProviderService
}

func NewSearchHandler(search *services.SearchService, providers *services.ProviderService) *SearchHandler {
	return &SearchHandler{Search: search, Providers: providers}
}

// SearchProviders reads everything from the query string:
// lat, lng, radius_km plus optional category_id, min_rating, min_price,
// max_price, limit, offset.
func (h *SearchHandler) SearchProviders(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return badParam(c, "lat")
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return badParam(c, "lng")
	}
	radius, err := strconv.ParseFloat(c.Query("radius_km", "5"), 64)
	if err != nil {
		return badParam(c, "radius_km")
	}

	params := services.SearchParams{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Limit:    c.QueryInt("limit", 20),
		Offset:   c.QueryInt("offset", 0),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return badParam(c, "category_id")
		}
		cid := uint(id)
		params.CategoryID = &cid
	}
	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badParam(c, "min_rating")
		}
		params.MinRating = &v
	}
	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badParam(c, "min_price")
		}
		params.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badParam(c, "max_price")
		}
		params.MaxPrice = &v
	}

	results, err := h.Search.Search(c.Context(), params)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, results)
}

func (h *SearchHandler) GetProviderProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	profile, err := h.Providers.GetPublic(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, profile)
}
