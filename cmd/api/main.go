package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/servicepros/pricebook-api/internal/application/auth"
	"github.com/servicepros/pricebook-api/internal/application/catalog"
	"github.com/servicepros/pricebook-api/internal/application/company"
	"github.com/servicepros/pricebook-api/internal/application/overlay"
	apppricing "github.com/servicepros/pricebook-api/internal/application/pricing"
	domainpricing "github.com/servicepros/pricebook-api/internal/domain/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/tenancy"
	"github.com/servicepros/pricebook-api/internal/infrastructure/cache"
	"github.com/servicepros/pricebook-api/internal/infrastructure/postgres"
	httpRouter "github.com/servicepros/pricebook-api/internal/interfaces/http"
	"github.com/servicepros/pricebook-api/pkg/config"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

// runMigrations aplica las migraciones goose pendientes al arrancar.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catRepo := postgres.NewCategoryRepository(pool)
	subRepo := postgres.NewSubcategoryRepository(pool)
	svcRepo := postgres.NewMasterServiceRepository(pool)
	overrideRepo := postgres.NewCompanyServiceRepository(pool)
	laborRepo := postgres.NewLaborRateRepository(pool)
	taxRepo := postgres.NewTaxRateRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := tenancy.NewGuard(cfg.Tenancy.AdminBypass, log)

	// Cache de cotizaciones: opcional, REDIS_URL vacío lo deshabilita.
	var quoteCache apppricing.QuoteCache
	var invalidator overlay.QuoteInvalidator
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("REDIS_URL inválido")
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		qc := cache.NewQuoteCache(rdb, log)
		quoteCache = qc
		invalidator = qc
	}

	mode := domainpricing.RoundHalfEven
	if cfg.Pricing.RoundingMode == config.RoundingHalfUp {
		mode = domainpricing.RoundHalfUp
	}

	catalogUC := catalog.NewUseCase(catRepo, subRepo, svcRepo, overrideRepo)
	overlayUC := overlay.NewUseCase(overrideRepo, laborRepo, taxRepo, svcRepo, guard, invalidator)
	quoteUC := apppricing.NewQuoteUseCase(txRunner, guard, quoteCache, cfg.Pricing.DefaultTaxRate, mode)
	companyUC := company.NewUseCase(companyRepo)
	authUC := auth.NewUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PriceBook Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		OverlayUC: overlayUC,
		QuoteUC:   quoteUC,
		CompanyUC: companyUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
