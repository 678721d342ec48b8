package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domsearch "github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// filtersFor runs parseFilters against a request URL.
func filtersFor(t *testing.T, target string) (*domsearch.Filters, error) {
	t.Helper()
	app := fiber.New()
	var got *domsearch.Filters
	var gotErr error
	app.Get("/search", func(c *fiber.Ctx) error {
		got, gotErr = parseFilters(c)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	return got, gotErr
}

func TestParseFilters_FullQueryString(t *testing.T) {
	f, err := filtersFor(t, "/search?query=%C3%A1o+thun&category_slug=thoi-trang&min_price=100000&max_price=500000&min_rating=4&is_featured=true&in_stock_only=true&on_sale_only=true&tags=cotton,nam&sort_by=price&sort_order=asc&page=2&limit=12")
	require.NoError(t, err)

	assert.Equal(t, "áo thun", f.Query)
	assert.Equal(t, "thoi-trang", f.CategorySlug)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, "100000", f.MinPrice.String())
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, "500000", f.MaxPrice.String())
	require.NotNil(t, f.MinRating)
	assert.Equal(t, 4.0, *f.MinRating)
	require.NotNil(t, f.IsFeatured)
	assert.True(t, *f.IsFeatured)
	assert.True(t, f.InStockOnly)
	assert.True(t, f.OnSaleOnly)
	assert.Equal(t, []string{"cotton", "nam"}, f.Tags)
	assert.Equal(t, domsearch.SortPrice, f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 12, f.Limit)
}

func TestParseFilters_EmptyIsBrowseMode(t *testing.T) {
	f, err := filtersFor(t, "/search")
	require.NoError(t, err)

	assert.False(t, f.HasQuery())
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.IsFeatured)
	assert.Empty(t, f.Tags)
}

func TestParseFilters_BadNumbersRejected(t *testing.T) {
	_, err := filtersFor(t, "/search?min_price=abc")
	assert.Error(t, err)

	_, err = filtersFor(t, "/search?min_rating=high")
	assert.Error(t, err)

	_, err = filtersFor(t, "/search?view_count_min=-3")
	assert.Error(t, err)
}

func TestParseFilters_TagsTrimmedAndEmptyDropped(t *testing.T) {
	f, err := filtersFor(t, "/search?tags=%20cotton%20,,nam")
	require.NoError(t, err)
	assert.Equal(t, []string{"cotton", "nam"}, f.Tags)
}
