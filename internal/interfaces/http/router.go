package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepros/pricebook-api/internal/application/auth"
	"github.com/servicepros/pricebook-api/internal/application/catalog"
	"github.com/servicepros/pricebook-api/internal/application/company"
	"github.com/servicepros/pricebook-api/internal/application/overlay"
	"github.com/servicepros/pricebook-api/internal/application/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	OverlayUC *overlay.UseCase
	QuoteUC   *pricing.QuoteUseCase
	CompanyUC *company.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta pública (registro de tenant); listado solo admin
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Alta de usuarios privilegiados: solo admin
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	protected.Get("/companies", RequireRole(entity.RoleAdmin), companyHandler.List)
	protected.Get("/companies/:id", companyHandler.GetByID)

	// Catálogo maestro: lecturas para todos, mutaciones solo admin
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	cat := protected.Group("/catalog")
	cat.Get("/categories", catalogHandler.ListCategories)
	cat.Get("/subcategories/:cat", catalogHandler.ListSubcategories)
	cat.Get("/services/detail/:code", catalogHandler.GetService)
	cat.Get("/services/:sub", catalogHandler.ListServices)
	cat.Put("/categories/:code", RequireRole(entity.RoleAdmin), catalogHandler.UpsertCategory)
	cat.Put("/subcategories/:code", RequireRole(entity.RoleAdmin), catalogHandler.UpsertSubcategory)
	cat.Put("/services/:code", RequireRole(entity.RoleAdmin), catalogHandler.UpsertService)

	// Cotización
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	protected.Get("/services/:code/quote", quoteHandler.Quote)
	protected.Post("/quotes/recalculate", quoteHandler.Recalculate)

	// Overlay de la empresa: overrides y tarifas
	overrideHandler := NewOverrideHandler(deps.OverlayUC)
	ov := protected.Group("/company/overrides")
	ov.Get("/", overrideHandler.List)
	ov.Get("/:code", overrideHandler.Get)
	ov.Put("/:code", overrideHandler.Set)
	ov.Delete("/:code", overrideHandler.Clear)

	rateHandler := NewRateHandler(deps.OverlayUC)
	labor := protected.Group("/company/labor-rates")
	labor.Get("/", rateHandler.ListLaborRates)
	labor.Post("/", rateHandler.SetLaborRate)
	labor.Delete("/", rateHandler.DeleteLaborRate)

	tax := protected.Group("/company/tax-rates")
	tax.Get("/", rateHandler.ListTaxRates)
	tax.Post("/", rateHandler.SetTaxRate)
	tax.Delete("/", rateHandler.DeleteTaxRate)
}
