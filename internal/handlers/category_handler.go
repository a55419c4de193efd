package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"lokaserve/internal/services"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.Categories.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, categories)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.Categories.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return created(c, cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badParam(c, "id")
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.Categories.Update(c.Context(), uint(id), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return badParam(c, "id")
	}
	if err := h.Categories.Delete(c.Context(), uint(id)); err != nil {
		return fail(c, err)
	}
	return ok(c, nil)
}
