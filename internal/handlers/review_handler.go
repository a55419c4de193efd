package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lokaserve/internal/services"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type createReviewReq struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	var req createReviewReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return badParam(c, "booking_id")
	}

	review, err := h.Reviews.Create(c.Context(), auth, services.CreateReviewInput{
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, review)
}

func (h *ReviewHandler) ListMine(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	reviews, err := h.Reviews.ListForCustomer(c.Context(), auth)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, reviews)
}

func (h *ReviewHandler) ListForProvider(c *fiber.Ctx) error {
	auth, err := getAuth(c)
	if err != nil {
		return err
	}
	reviews, err := h.Reviews.ListForProvider(c.Context(), auth.ProviderID,
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, reviews)
}

// --- admin moderation ----------------------------------------------------

func (h *ReviewHandler) ListAll(c *fiber.Ctx) error {
	reviews, err := h.Reviews.ListAll(c.Context(),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, reviews)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.Reviews.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
