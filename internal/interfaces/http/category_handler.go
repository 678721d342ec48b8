package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/catalog"
	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
)

// CategoryHandler covers the category endpoints.
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler builds the handler.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "category data"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        include_inactive  query  bool  false  "include inactive categories (admin views)"
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("include_inactive", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Get a category by slug
// @Tags         categories
// @Produce      json
// @Param        slug  path  string  true  "category slug"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(c *fiber.Ctx) error {
	s := c.Params("slug")
	if s == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SLUG", Message: "slug is required"})
	}
	out, err := h.uc.GetBySlug(s)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "category ID"
// @Param        body  body  dto.UpdateCategoryRequest  true  "fields to update"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Soft-delete a category
// @Description  Fails with 409 while the category still has active children or products.
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "category ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
