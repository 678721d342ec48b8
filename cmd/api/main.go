package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/auth"
	"github.com/ngochuy-hya/catalog-search-api/internal/application/catalog"
	"github.com/ngochuy-hya/catalog-search-api/internal/application/indexer"
	appsearch "github.com/ngochuy-hya/catalog-search-api/internal/application/search"
	"github.com/ngochuy-hya/catalog-search-api/internal/infrastructure/elastic"
	"github.com/ngochuy-hya/catalog-search-api/internal/infrastructure/mysql"
	"github.com/ngochuy-hya/catalog-search-api/internal/infrastructure/rediscache"
	httpRouter "github.com/ngochuy-hya/catalog-search-api/internal/interfaces/http"
	"github.com/ngochuy-hya/catalog-search-api/pkg/config"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	db, err := mysql.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("MySQL connection")
	}
	defer db.Close()

	// The search engine may be down at boot; the API still serves via the
	// relational fallback and the outbox replays once it recovers.
	esClient, err := elastic.NewClient(cfg.Elastic)
	if err != nil {
		log.Fatal().Err(err).Msg("Elasticsearch client")
	}
	engine := elastic.NewEngine(esClient, cfg.Elastic.Index)
	if err := engine.EnsureIndex(ctx); err != nil {
		log.Warn().Err(err).Msg("search index not ready, continuing with fallback")
	}

	productRepo := mysql.NewProductRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	outboxRepo := mysql.NewOutboxRepository(db)
	userRepo := mysql.NewUserRepository(db)
	otpRepo := mysql.NewOTPRepository(db)
	tokenRepo := mysql.NewRefreshTokenRepository(db)

	// Redis is optional: without it search responses are not cached and
	// views are written straight to MySQL.
	var cache *rediscache.Cache
	if cfg.Redis.URL != "" {
		cache, err = rediscache.New(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var viewBuffer catalog.ViewBuffer
	var viewDrainer indexer.ViewDrainer
	var responseCache appsearch.ResponseCache
	if cache != nil {
		viewBuffer = cache
		viewDrainer = cache
		responseCache = cache
	}

	productUC := catalog.NewProductUseCase(productRepo, categoryRepo, outboxRepo, viewBuffer, log)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	searchUC := appsearch.NewUseCase(engine, productRepo, responseCache, log)
	authUC := auth.NewUseCase(userRepo, otpRepo, tokenRepo, cfg.JWT, log)

	syncUC := indexer.NewUseCase(productRepo, outboxRepo, engine, log)
	worker := indexer.NewWorker(syncUC, outboxRepo, productRepo, viewDrainer, log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	go worker.Run(workerCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name}
		if err := engine.Ping(c.Context()); err != nil {
			status["search_engine"] = "degraded"
		} else {
			status["search_engine"] = "ok"
		}
		return c.JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		SearchUC:   searchUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
