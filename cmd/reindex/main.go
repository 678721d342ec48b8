// Command reindex rebuilds the product search index from the catalog.
// It recreates the index mapping when missing, returns parked sync entries
// to pending and bulk-indexes every active product.
package main

import (
	"context"
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/indexer"
	"github.com/ngochuy-hya/catalog-search-api/internal/infrastructure/elastic"
	"github.com/ngochuy-hya/catalog-search-api/internal/infrastructure/mysql"
	"github.com/ngochuy-hya/catalog-search-api/pkg/config"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := mysql.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("MySQL connection")
	}
	defer db.Close()

	esClient, err := elastic.NewClient(cfg.Elastic)
	if err != nil {
		log.Fatal().Err(err).Msg("Elasticsearch client")
	}
	engine := elastic.NewEngine(esClient, cfg.Elastic.Index)
	if err := engine.EnsureIndex(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure search index")
	}

	productRepo := mysql.NewProductRepository(db)
	outboxRepo := mysql.NewOutboxRepository(db)

	uc := indexer.NewUseCase(productRepo, outboxRepo, engine, log)
	report, err := uc.Reindex(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reindex")
	}

	for _, item := range report.Errors {
		log.Warn().Str("item", item).Msg("document failed to index")
	}
	log.Info().Int("indexed", report.Indexed).Int("failed", len(report.Errors)).Msg("done")
}
