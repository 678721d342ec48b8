package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

// UseCase moves catalog state into the index. SyncProduct serves the outbox
// worker; Reindex rebuilds the whole index from the catalog.
type UseCase struct {
	products repository.ProductRepository
	outbox   repository.OutboxRepository
	engine   search.Engine
	log      *logger.Logger
}

// NewUseCase builds the usecase.
func NewUseCase(
	products repository.ProductRepository,
	outbox repository.OutboxRepository,
	engine search.Engine,
	log *logger.Logger,
) *UseCase {
	return &UseCase{products: products, outbox: outbox, engine: engine, log: log}
}

// SyncProduct brings the index in line with the catalog for one product.
// The catalog row is re-read at sync time, so a stale outbox op cannot index
// stale data: an index intent for a product that has since gone inactive
// turns into a delete.
func (uc *UseCase) SyncProduct(ctx context.Context, productID, op string) error {
	if op == entity.OutboxOpDelete {
		return uc.engine.Delete(ctx, productID)
	}

	p, c, err := uc.products.GetSearchRow(productID)
	if errors.Is(err, domain.ErrNotFound) {
		return uc.engine.Delete(ctx, productID)
	}
	if err != nil {
		return fmt.Errorf("load search row: %w", err)
	}

	doc := BuildDocument(p, c)
	return uc.engine.Index(ctx, &doc)
}

// Reindex rebuilds the index from every active product. Parked outbox entries
// are returned to pending first so a full rebuild also clears the backlog.
func (uc *UseCase) Reindex(ctx context.Context) (*search.BulkReport, error) {
	reset, err := uc.outbox.ResetFailed()
	if err != nil {
		uc.log.Warn().Err(err).Msg("reset failed outbox entries")
	} else if reset > 0 {
		uc.log.Info().Int64("entries", reset).Msg("failed outbox entries returned to pending")
	}

	rows, err := uc.products.ListActiveSearchRows()
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}

	docs := make([]entity.SearchDocument, 0, len(rows))
	for i := range rows {
		docs = append(docs, BuildDocument(&rows[i].Product, &rows[i].Category))
	}

	report, err := uc.engine.BulkIndex(ctx, docs)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int("indexed", report.Indexed).
		Int("errors", len(report.Errors)).
		Msg("reindex finished")
	return report, nil
}
