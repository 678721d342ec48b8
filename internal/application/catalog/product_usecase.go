package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
	"github.com/ngochuy-hya/catalog-search-api/pkg/slug"
)

// ViewBuffer absorbs view-count bumps off the read path. The Redis cache
// implements it; a nil buffer falls back to a direct catalog increment.
type ViewBuffer interface {
	IncrView(ctx context.Context, productID string) error
}

// ProductUseCase covers the product CRUD lifecycle. Every mutation records a
// durable sync intent; the index is never written to synchronously from here.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	outbox     repository.OutboxRepository
	views      ViewBuffer // may be nil
	log        *logger.Logger
}

// NewProductUseCase builds the usecase.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	outbox repository.OutboxRepository,
	views ViewBuffer,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, outbox: outbox, views: views, log: log}
}

// Create creates a product. The slug derives from the name; a duplicate slug
// gets a short random suffix rather than failing the request.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.Status.Visible() {
		return nil, domain.ErrConflict
	}

	status := domain.Status(in.Status)
	if in.Status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() || status == domain.StatusPending {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Product{
		ID:               uuid.New().String(),
		Slug:             slug.Make(in.Name),
		SKU:              in.SKU,
		Name:             in.Name,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		SalePrice:        toNullDecimal(in.SalePrice),
		StockQuantity:    in.StockQuantity,
		CategoryID:       in.CategoryID,
		Status:           status,
		IsFeatured:       in.IsFeatured,
		Tags:             entity.Tags(in.Tags),
		MetaTitle:        in.MetaTitle,
		MetaKeywords:     in.MetaKeywords,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	uc.warnOddSalePrice(p)

	err = uc.products.Create(p)
	if err == domain.ErrDuplicate {
		p.Slug = p.Slug + "-" + uuid.New().String()[:8]
		err = uc.products.Create(p)
	}
	if err != nil {
		return nil, err
	}

	uc.enqueueSync(p)
	uc.refreshCount(p.CategoryID)
	return toProductResponse(p), nil
}

// GetByID fetches a product by ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetBySlug fetches a product by slug and records a view. The view bump is
// fire-and-forget: it never fails or delays the read.
func (uc *ProductUseCase) GetBySlug(ctx context.Context, s string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	uc.trackView(ctx, p.ID)
	return toProductResponse(p), nil
}

func (uc *ProductUseCase) trackView(ctx context.Context, id string) {
	var err error
	if uc.views != nil {
		err = uc.views.IncrView(ctx, id)
	} else {
		err = uc.products.IncrementViewCount(id, 1)
	}
	if err != nil {
		uc.log.Debug().Err(err).Str("product_id", id).Msg("view tracking failed")
	}
}

// Update applies a partial update and re-enqueues the sync intent.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	prevCategory := p.CategoryID

	if in.Name != nil && *in.Name != p.Name {
		p.Name = *in.Name
		p.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ShortDescription != nil {
		p.ShortDescription = *in.ShortDescription
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ClearSalePrice {
		p.SalePrice = decimal.NullDecimal{}
	} else if in.SalePrice != nil {
		p.SalePrice = toNullDecimal(in.SalePrice)
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		category, err := uc.categories.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if !category.Status.Visible() {
			return nil, domain.ErrConflict
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.Valid() || status == domain.StatusPending {
			return nil, domain.ErrInvalidInput
		}
		p.Status = status
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	if in.Tags != nil {
		p.Tags = entity.Tags(in.Tags)
	}
	if in.MetaTitle != nil {
		p.MetaTitle = *in.MetaTitle
	}
	if in.MetaKeywords != nil {
		p.MetaKeywords = *in.MetaKeywords
	}
	p.UpdatedAt = time.Now()
	uc.warnOddSalePrice(p)

	err = uc.products.Update(p)
	if err == domain.ErrDuplicate {
		p.Slug = p.Slug + "-" + uuid.New().String()[:8]
		err = uc.products.Update(p)
	}
	if err != nil {
		return nil, err
	}

	uc.enqueueSync(p)
	uc.refreshCount(p.CategoryID)
	if prevCategory != p.CategoryID {
		uc.refreshCount(prevCategory)
	}
	return toProductResponse(p), nil
}

// Delete soft-deletes: status flips to inactive and the document is removed
// from the index. The row stays recoverable.
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if err := uc.products.SetStatus(id, string(domain.StatusInactive)); err != nil {
		return err
	}
	if err := uc.outbox.Enqueue(id, entity.OutboxOpDelete); err != nil {
		uc.log.Warn().Err(err).Str("product_id", id).Msg("enqueue index delete failed")
	}
	uc.refreshCount(p.CategoryID)
	return nil
}

// List returns products of any status for the admin surface.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// enqueueSync records the durable sync intent for a mutation. Active products
// are (re)indexed, everything else is removed from the index. Failures are
// logged and swallowed: the catalog write must not depend on the outbox row,
// and the next mutation or full reindex repairs the gap.
func (uc *ProductUseCase) enqueueSync(p *entity.Product) {
	op := entity.OutboxOpIndex
	if !p.Status.Visible() {
		op = entity.OutboxOpDelete
	}
	if err := uc.outbox.Enqueue(p.ID, op); err != nil {
		uc.log.Warn().Err(err).Str("product_id", p.ID).Str("op", op).Msg("enqueue index sync failed")
	}
}

func (uc *ProductUseCase) refreshCount(categoryID string) {
	if err := uc.categories.RefreshProductCount(categoryID); err != nil {
		uc.log.Warn().Err(err).Str("category_id", categoryID).Msg("refresh product count failed")
	}
}

// warnOddSalePrice surfaces "sales" that do not discount. They are stored
// as-is but never treated as a sale by pricing, ranking or filtering.
func (uc *ProductUseCase) warnOddSalePrice(p *entity.Product) {
	if p.SalePrice.Valid && !p.SalePrice.Decimal.LessThan(p.Price) {
		uc.log.Warn().
			Str("product_id", p.ID).
			Str("price", p.Price.String()).
			Str("sale_price", p.SalePrice.Decimal.String()).
			Msg("sale_price is not below price; product will not count as on sale")
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:               p.ID,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		EffectivePrice:   p.EffectivePrice(),
		DiscountPercent:  p.DiscountPercent(),
		OnSale:           p.OnSale(),
		StockQuantity:    p.StockQuantity,
		InStock:          p.InStock(),
		CategoryID:       p.CategoryID,
		Status:           string(p.Status),
		IsFeatured:       p.IsFeatured,
		AverageRating:    p.AverageRating,
		ReviewCount:      p.ReviewCount,
		ViewCount:        p.ViewCount,
		PurchaseCount:    p.PurchaseCount,
		Tags:             p.Tags,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.SalePrice.Valid {
		sp := p.SalePrice.Decimal
		resp.SalePrice = &sp
	}
	return resp
}
