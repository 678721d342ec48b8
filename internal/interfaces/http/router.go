package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/auth"
	"github.com/ngochuy-hya/catalog-search-api/internal/application/catalog"
	appsearch "github.com/ngochuy-hya/catalog-search-api/internal/application/search"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
)

// RouterDeps are the dependencies of the router.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	SearchUC   *appsearch.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registers the API routes. Search and catalog reads are public,
// catalog writes live under /api/admin behind the admin role.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/resend-otp", authHandler.ResendOTP)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)

	// Search (public)
	searchHandler := NewSearchHandler(deps.SearchUC)
	api.Get("/search", searchHandler.Search)

	// Catalog reads (public)
	productHandler := NewProductHandler(deps.ProductUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	api.Get("/products/:slug", productHandler.GetBySlug)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:slug", categoryHandler.GetBySlug)

	// Admin (Bearer token + admin role)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	products := admin.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := admin.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	admin.Get("/search/documents/:id", searchHandler.GetDocument)
}
