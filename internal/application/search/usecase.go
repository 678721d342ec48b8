package search

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	domsearch "github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

// ResponseCache is the optional short-TTL cache in front of the engine.
// The Redis adapter implements it.
type ResponseCache interface {
	GetSearch(ctx context.Context, f *domsearch.Filters) ([]byte, bool)
	SetSearch(ctx context.Context, f *domsearch.Filters, payload []byte)
}

// UseCase orchestrates a search: validate the filters, try the index, and
// answer from the catalog when the index is unreachable. Clients always get
// the same response shape; query_info.search_engine names the path taken.
type UseCase struct {
	engine   domsearch.Engine
	products repository.ProductRepository
	cache    ResponseCache // may be nil
	log      *logger.Logger
}

// NewUseCase builds the usecase. cache may be nil.
func NewUseCase(
	engine domsearch.Engine,
	products repository.ProductRepository,
	cache ResponseCache,
	log *logger.Logger,
) *UseCase {
	return &UseCase{engine: engine, products: products, cache: cache, log: log}
}

// Search answers a filter set. Invalid filters are rejected before any store
// is touched. Engine unavailability degrades to the relational fallback;
// every other engine error is returned as-is.
func (uc *UseCase) Search(ctx context.Context, f *domsearch.Filters) (*dto.SearchResponse, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if payload, ok := uc.cache.GetSearch(ctx, f); ok {
			var resp dto.SearchResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	resp, err := uc.searchIndex(ctx, f)
	if err != nil {
		if !errors.Is(err, domain.ErrIndexUnavailable) {
			return nil, err
		}
		uc.log.Warn().Err(err).Msg("search engine unavailable, answering from catalog")
		resp, err = uc.searchFallback(f)
		if err != nil {
			return nil, err
		}
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			uc.cache.SetSearch(ctx, f, payload)
		}
	}
	return resp, nil
}

// GetDocument fetches the raw index document for one product, for admin
// inspection of what the index actually holds.
func (uc *UseCase) GetDocument(ctx context.Context, productID string) (*entity.SearchDocument, error) {
	return uc.engine.GetByID(ctx, productID)
}

func (uc *UseCase) searchIndex(ctx context.Context, f *domsearch.Filters) (*dto.SearchResponse, error) {
	result, err := uc.engine.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	products := make([]dto.SearchProduct, 0, len(result.Documents))
	for i := range result.Documents {
		products = append(products, fromDocument(&result.Documents[i]))
	}
	return &dto.SearchResponse{
		Products:     products,
		Pagination:   domsearch.NewPagination(f.Page, f.Limit, result.Total),
		Aggregations: result.Aggregations,
		Suggestions:  result.Suggestions,
		QueryInfo:    queryInfo(f, domsearch.EngineElasticsearch),
	}, nil
}

// searchFallback answers from the catalog alone. Facets and suggestions need
// the index, so the envelope simply omits them.
func (uc *UseCase) searchFallback(f *domsearch.Filters) (*dto.SearchResponse, error) {
	list, total, err := uc.products.Search(f)
	if err != nil {
		return nil, err
	}
	products := make([]dto.SearchProduct, 0, len(list))
	for _, p := range list {
		products = append(products, fromProduct(p))
	}
	return &dto.SearchResponse{
		Products:   products,
		Pagination: domsearch.NewPagination(f.Page, f.Limit, total),
		QueryInfo:  queryInfo(f, domsearch.EngineMySQLFallback),
	}, nil
}

func queryInfo(f *domsearch.Filters, engine string) dto.QueryInfo {
	return dto.QueryInfo{
		Query:        f.Query,
		SearchEngine: engine,
		SortBy:       f.SortBy,
		SortOrder:    f.SortOrder,
	}
}

func fromDocument(d *entity.SearchDocument) dto.SearchProduct {
	return dto.SearchProduct{
		ID:               d.ID,
		Slug:             d.Slug,
		SKU:              d.SKU,
		Name:             d.Name,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		SalePrice:        d.SalePrice,
		FinalPrice:       d.FinalPrice,
		DiscountPercent:  d.DiscountPercent,
		OnSale:           d.OnSale,
		InStock:          d.InStock,
		StockQuantity:    d.StockQuantity,
		CategoryID:       d.CategoryID,
		CategoryName:     d.CategoryName,
		CategorySlug:     d.CategorySlug,
		IsFeatured:       d.IsFeatured,
		AverageRating:    d.AverageRating,
		ReviewCount:      d.ReviewCount,
		Tags:             d.Tags,
		CreatedAt:        d.CreatedAt,
	}
}

// fromProduct fills the shared row shape from a catalog row. Category name
// and slug live in the index only; the fallback leaves them empty.
func fromProduct(p *entity.Product) dto.SearchProduct {
	row := dto.SearchProduct{
		ID:               p.ID,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Price:            p.Price.InexactFloat64(),
		FinalPrice:       p.EffectivePrice().InexactFloat64(),
		DiscountPercent:  p.DiscountPercent(),
		OnSale:           p.OnSale(),
		InStock:          p.InStock(),
		StockQuantity:    p.StockQuantity,
		CategoryID:       p.CategoryID,
		IsFeatured:       p.IsFeatured,
		AverageRating:    p.AverageRating,
		ReviewCount:      p.ReviewCount,
		Tags:             p.Tags,
		CreatedAt:        p.CreatedAt,
	}
	if p.SalePrice.Valid {
		sp := p.SalePrice.Decimal.InexactFloat64()
		row.SalePrice = &sp
	}
	return row
}
