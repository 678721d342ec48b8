package indexer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/indexer"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

type fakeEngine struct {
	indexed []entity.SearchDocument
	deleted []string
	bulked  []entity.SearchDocument
}

func (e *fakeEngine) Search(ctx context.Context, f *search.Filters) (*search.Result, error) {
	return &search.Result{}, nil
}

func (e *fakeEngine) Index(ctx context.Context, doc *entity.SearchDocument) error {
	e.indexed = append(e.indexed, *doc)
	return nil
}

func (e *fakeEngine) Delete(ctx context.Context, productID string) error {
	e.deleted = append(e.deleted, productID)
	return nil
}

func (e *fakeEngine) BulkIndex(ctx context.Context, docs []entity.SearchDocument) (*search.BulkReport, error) {
	e.bulked = append(e.bulked, docs...)
	return &search.BulkReport{Indexed: len(docs)}, nil
}

func (e *fakeEngine) GetByID(ctx context.Context, productID string) (*entity.SearchDocument, error) {
	return nil, domain.ErrNotFound
}

type fakeProductRepo struct {
	rows map[string]repository.SearchRow
}

func (r *fakeProductRepo) GetSearchRow(id string) (*entity.Product, *entity.Category, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	p, c := row.Product, row.Category
	return &p, &c, nil
}

func (r *fakeProductRepo) ListActiveSearchRows() ([]repository.SearchRow, error) {
	var out []repository.SearchRow
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeProductRepo) Create(p *entity.Product) error                   { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)       { return nil, domain.ErrNotFound }
func (r *fakeProductRepo) GetBySlug(slug string) (*entity.Product, error)   { return nil, domain.ErrNotFound }
func (r *fakeProductRepo) Update(p *entity.Product) error                   { return nil }
func (r *fakeProductRepo) SetStatus(id string, status string) error         { return nil }
func (r *fakeProductRepo) IncrementViewCount(id string, delta int) error    { return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Search(f *search.Filters) ([]*entity.Product, int64, error) {
	return nil, 0, nil
}

type fakeOutbox struct {
	resets int
}

func (o *fakeOutbox) Enqueue(productID, op string) error                          { return nil }
func (o *fakeOutbox) Due(now time.Time, limit int) ([]*entity.OutboxEntry, error) { return nil, nil }
func (o *fakeOutbox) MarkDone(id int64) error                                     { return nil }
func (o *fakeOutbox) Reschedule(id int64, attempts int, next time.Time, lastError string) error {
	return nil
}
func (o *fakeOutbox) MarkFailed(id int64, lastError string) error { return nil }
func (o *fakeOutbox) ResetFailed() (int64, error) {
	o.resets++
	return 3, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func activeProduct(id string) entity.Product {
	sale := decimal.NewFromInt(80)
	return entity.Product{
		ID:            id,
		Slug:          "ao-khoac-" + id,
		SKU:           "SKU-" + id,
		Name:          "Áo khoác " + id,
		Price:         decimal.NewFromInt(100),
		SalePrice:     decimal.NullDecimal{Decimal: sale, Valid: true},
		StockQuantity: 4,
		CategoryID:    "c1",
		Status:        domain.StatusActive,
		AverageRating: 4.0,
		ReviewCount:   10,
	}
}

func fashionCategory() entity.Category {
	return entity.Category{ID: "c1", Slug: "thoi-trang", Name: "Thời trang", Status: domain.StatusActive}
}

func TestBuildDocument(t *testing.T) {
	p := activeProduct("p1")
	c := fashionCategory()

	doc := indexer.BuildDocument(&p, &c)

	assert.Equal(t, "p1", doc.ID)
	assert.Equal(t, "Thời trang", doc.CategoryName)
	assert.Equal(t, "thoi-trang", doc.CategorySlug)
	assert.InDelta(t, 100, doc.Price, 0.001)
	require.NotNil(t, doc.SalePrice)
	assert.InDelta(t, 80, *doc.SalePrice, 0.001)
	assert.InDelta(t, 80, doc.FinalPrice, 0.001)
	assert.Equal(t, 20, doc.DiscountPercent)
	assert.True(t, doc.OnSale)
	assert.True(t, doc.InStock)
	assert.Greater(t, doc.BoostScore, 1.0)
}

func TestBuildDocument_NonDiscountingSalePrice(t *testing.T) {
	p := activeProduct("p1")
	p.SalePrice = decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true}

	doc := indexer.BuildDocument(&p, nil)

	require.NotNil(t, doc.SalePrice, "stored value is mirrored into the document")
	assert.False(t, doc.OnSale)
	assert.InDelta(t, 100, doc.FinalPrice, 0.001, "final price ignores a non-discounting sale price")
	assert.Equal(t, 0, doc.DiscountPercent)
}

func TestSyncProduct_IndexesActiveRow(t *testing.T) {
	engine := &fakeEngine{}
	repo := &fakeProductRepo{rows: map[string]repository.SearchRow{
		"p1": {Product: activeProduct("p1"), Category: fashionCategory()},
	}}
	uc := indexer.NewUseCase(repo, &fakeOutbox{}, engine, testLogger())

	require.NoError(t, uc.SyncProduct(context.Background(), "p1", entity.OutboxOpIndex))

	require.Len(t, engine.indexed, 1)
	assert.Equal(t, "p1", engine.indexed[0].ID)
	assert.Greater(t, engine.indexed[0].BoostScore, 0.0)
	assert.Empty(t, engine.deleted)
}

// A stale index intent for a product that went inactive turns into a delete.
func TestSyncProduct_MissingRowTurnsIntoDelete(t *testing.T) {
	engine := &fakeEngine{}
	repo := &fakeProductRepo{rows: map[string]repository.SearchRow{}}
	uc := indexer.NewUseCase(repo, &fakeOutbox{}, engine, testLogger())

	require.NoError(t, uc.SyncProduct(context.Background(), "gone", entity.OutboxOpIndex))

	assert.Equal(t, []string{"gone"}, engine.deleted)
	assert.Empty(t, engine.indexed)
}

func TestSyncProduct_DeleteOpSkipsCatalogRead(t *testing.T) {
	engine := &fakeEngine{}
	uc := indexer.NewUseCase(&fakeProductRepo{}, &fakeOutbox{}, engine, testLogger())

	require.NoError(t, uc.SyncProduct(context.Background(), "p9", entity.OutboxOpDelete))
	assert.Equal(t, []string{"p9"}, engine.deleted)
}

func TestReindex_SweepsFailedAndBulkIndexes(t *testing.T) {
	engine := &fakeEngine{}
	outbox := &fakeOutbox{}
	repo := &fakeProductRepo{rows: map[string]repository.SearchRow{
		"p1": {Product: activeProduct("p1"), Category: fashionCategory()},
		"p2": {Product: activeProduct("p2"), Category: fashionCategory()},
	}}
	uc := indexer.NewUseCase(repo, outbox, engine, testLogger())

	report, err := uc.Reindex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outbox.resets)
	assert.Equal(t, 2, report.Indexed)
	assert.Len(t, engine.bulked, 2)
}

func TestBackoff_DoublesAndCaps(t *testing.T) {
	assert.Equal(t, 5*time.Second, indexer.Backoff(1))
	assert.Equal(t, 10*time.Second, indexer.Backoff(2))
	assert.Equal(t, 20*time.Second, indexer.Backoff(3))
	assert.Equal(t, 40*time.Second, indexer.Backoff(4))
	assert.Equal(t, 5*time.Minute, indexer.Backoff(20))
}
