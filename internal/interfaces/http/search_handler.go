package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	appsearch "github.com/ngochuy-hya/catalog-search-api/internal/application/search"
	domsearch "github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// SearchHandler covers the public search endpoint and the admin view of
// what the index holds for a product.
type SearchHandler struct {
	uc *appsearch.UseCase
}

// NewSearchHandler builds the handler.
func NewSearchHandler(uc *appsearch.UseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search godoc
// @Summary      Search and browse products
// @Description  Free-text search plus filters. Without a query the same endpoint browses the catalog.
// @Tags         search
// @Produce      json
// @Param        query          query  string  false  "free-text query (min 2 characters)"
// @Param        category_id    query  string  false  "filter by category ID"
// @Param        category_slug  query  string  false  "filter by category slug"
// @Param        min_price      query  number  false  "minimum effective price"
// @Param        max_price      query  number  false  "maximum effective price"
// @Param        min_rating     query  number  false  "minimum average rating (0-5)"
// @Param        is_featured    query  bool    false  "featured products only"
// @Param        in_stock_only  query  bool    false  "in-stock products only"
// @Param        on_sale_only   query  bool    false  "discounted products only"
// @Param        tags           query  string  false  "comma-separated tags, all must match"
// @Param        sort_by        query  string  false  "relevance|price|rating|newest|popularity|bestselling|name"
// @Param        sort_order     query  string  false  "asc|desc"  default(desc)
// @Param        page           query  int     false  "page"      default(1)
// @Param        limit          query  int     false  "page size"  default(20)
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Search(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetDocument godoc
// @Summary      Inspect the index document of a product
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "product ID"
// @Success      200  {object}  entity.SearchDocument
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/search/documents/{id} [get]
func (h *SearchHandler) GetDocument(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	doc, err := h.uc.GetDocument(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

type filterError string

func (e filterError) Error() string { return string(e) }

func parseFilters(c *fiber.Ctx) (*domsearch.Filters, error) {
	f := &domsearch.Filters{
		Query:        c.Query("query"),
		CategoryID:   c.Query("category_id"),
		CategorySlug: c.Query("category_slug"),
		InStockOnly:  c.QueryBool("in_stock_only", false),
		OnSaleOnly:   c.QueryBool("on_sale_only", false),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 0),
	}

	var err error
	if f.MinPrice, err = decimalParam(c, "min_price"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = decimalParam(c, "max_price"); err != nil {
		return nil, err
	}
	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, filterError("min_rating must be a number")
		}
		f.MinRating = &v
	}
	if raw := c.Query("is_featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, filterError("is_featured must be a boolean")
		}
		f.IsFeatured = &v
	}
	if raw := c.Query("view_count_min"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, filterError("view_count_min must be a non-negative integer")
		}
		f.ViewCountMin = &v
	}
	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f, nil
}

func decimalParam(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, filterError(name + " must be a number")
	}
	return &v, nil
}
