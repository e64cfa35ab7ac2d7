// Command seed carga un catálogo maestro de demostración y un tenant de prueba
// con tarifas, para desarrollo local. Idempotencia no garantizada: pensado para
// una base recién migrada.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/infrastructure/postgres"
	"github.com/servicepros/pricebook-api/pkg/config"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catRepo := postgres.NewCategoryRepository(pool)
	subRepo := postgres.NewSubcategoryRepository(pool)
	svcRepo := postgres.NewMasterServiceRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	overrideRepo := postgres.NewCompanyServiceRepository(pool)
	laborRepo := postgres.NewLaborRateRepository(pool)
	taxRepo := postgres.NewTaxRateRepository(pool)

	now := time.Now().UTC()

	// Catálogo maestro de demo: electricidad y plomería.
	categories := []*entity.Category{
		{Code: "EL", Name: "Electrical", Sort: 1, Active: true, CreatedAt: now, UpdatedAt: now},
		{Code: "PL", Name: "Plumbing", Sort: 2, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range categories {
		if err := catRepo.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("code", c.Code).Msg("seed categoría")
		}
	}

	subcategories := []*entity.Subcategory{
		{Code: "EL-01", CategoryCode: "EL", Name: "Outlets & Switches", Sort: 1, Active: true, CreatedAt: now, UpdatedAt: now},
		{Code: "EL-02", CategoryCode: "EL", Name: "Panels", Sort: 2, Active: true, CreatedAt: now, UpdatedAt: now},
		{Code: "PL-01", CategoryCode: "PL", Name: "Fixtures", Sort: 1, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, s := range subcategories {
		if err := subRepo.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("code", s.Code).Msg("seed subcategoría")
		}
	}

	services := []*entity.MasterService{
		{
			Code: "EL-01-A-001", SubcategoryCode: "EL-01",
			Name: "Replace standard outlet", Description: "Remove and replace a standard 120V duplex outlet.",
			BasePrice: dec("100.0000"), BaseLaborHours: dec("1.50"), Unit: "each",
			Active: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			Code: "EL-01-A-002", SubcategoryCode: "EL-01",
			Name: "Install dimmer switch", Description: "Install a single-pole dimmer switch.",
			BasePrice: dec("85.0000"), BaseLaborHours: dec("1.00"), Unit: "each",
			Active: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			Code: "EL-02-A-001", SubcategoryCode: "EL-02",
			Name: "Panel inspection", Description: "Full inspection of the main service panel.",
			BasePrice: dec("150.0000"), BaseLaborHours: dec("2.00"), Unit: "each",
			Active: true, CreatedAt: now, UpdatedAt: now,
		},
		{
			Code: "PL-01-A-001", SubcategoryCode: "PL-01",
			Name: "Replace kitchen faucet", Description: "Remove old faucet and install customer-supplied unit.",
			BasePrice: dec("120.0000"), BaseLaborHours: dec("1.75"), Unit: "each",
			Active: true, CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, s := range services {
		if err := svcRepo.Create(ctx, s); err != nil {
			log.Fatal().Err(err).Str("code", s.Code).Msg("seed servicio")
		}
	}

	// Tenant de demo con usuario admin de empresa.
	companyID := uuid.NewString()
	demo := &entity.Company{
		ID: companyID, Name: "Demo Services LLC",
		Timezone: "America/Denver", Currency: "USD", Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := companyRepo.Create(ctx, demo); err != nil {
		log.Fatal().Err(err).Msg("seed empresa")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}
	user := &entity.User{
		ID: uuid.NewString(), CompanyID: companyID,
		Email: "owner@demo.test", PasswordHash: string(hash),
		Name: "Demo Owner", Role: entity.RoleCompanyAdmin, Status: "active",
		CreatedAt: now, UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("seed usuario")
	}

	// Tarifas vigentes desde el inicio del año corriente.
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	if err := laborRepo.Set(ctx, &entity.CompanyLaborRate{
		CompanyID: companyID, EffectiveFrom: yearStart,
		RatePerHour: dec("45.0000"), CreatedAt: now,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed tarifa de mano de obra")
	}
	if err := taxRepo.Set(ctx, &entity.CompanyTaxRate{
		CompanyID: companyID, Jurisdiction: entity.DefaultJurisdiction,
		EffectiveFrom: yearStart, Rate: dec("0.085"), CreatedAt: now,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed tasa de impuesto")
	}

	// Un override de ejemplo: 10% de recargo sobre el dimmer.
	if err := overrideRepo.Create(ctx, &entity.CompanyService{
		CompanyID: companyID, ServiceCode: "EL-01-A-002",
		AdjustmentKind: entity.AdjustPercent, AdjustmentValue: dec("10"),
		Note: "margen local", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed override")
	}

	log.Info().
		Str("company_id", companyID).
		Str("email", user.Email).
		Msg("datos de demostración cargados")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
