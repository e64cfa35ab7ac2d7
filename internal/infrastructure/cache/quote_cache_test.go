package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicepros/pricebook-api/internal/domain/pricing"
	"github.com/servicepros/pricebook-api/internal/infrastructure/cache"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

// newTestCache levanta un miniredis y construye el cache encima.
func newTestCache(t *testing.T) (*cache.QuoteCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return cache.NewQuoteCache(rdb, log), mr
}

func testQuote() *pricing.Quote {
	return &pricing.Quote{
		ServiceCode:   "EL-01-A-001",
		Quantity:      decimal.NewFromInt(2),
		BaseUnitPrice: decimal.RequireFromString("100.0000"),
		LaborHours:    decimal.RequireFromString("3.00"),
		LaborCost:     decimal.RequireFromString("135.0000"),
		LineSubtotal:  decimal.RequireFromString("335.0000"),
		TaxRate:       decimal.RequireFromString("0.085"),
		TaxAmount:     decimal.RequireFromString("28.48"),
		Total:         decimal.RequireFromString("363.48"),
		AsOf:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Roundtrip básico: lo que se guarda con Put se recupera con Get sin perder
// precisión decimal.
func TestQuoteCache_PutGet(t *testing.T) {
	qc, _ := newTestCache(t)
	ctx := context.Background()

	q := testQuote()
	qc.Put(ctx, testCompanyID, "clave-a", q)

	got, ok := qc.Get(ctx, testCompanyID, "clave-a")
	require.True(t, ok, "la entrada recién guardada debe estar en cache")
	assert.Equal(t, q.ServiceCode, got.ServiceCode)
	assert.True(t, q.Total.Equal(got.Total), "Total esperado %s, obtenido %s", q.Total, got.Total)
	assert.True(t, q.TaxAmount.Equal(got.TaxAmount))
	assert.True(t, q.AsOf.Equal(got.AsOf))
}

// Claves distintas no se pisan entre sí.
func TestQuoteCache_ClaveInexistente(t *testing.T) {
	qc, _ := newTestCache(t)
	ctx := context.Background()

	qc.Put(ctx, testCompanyID, "clave-a", testQuote())

	_, ok := qc.Get(ctx, testCompanyID, "clave-b")
	assert.False(t, ok, "una clave nunca escrita debe ser miss")
}

// Invalidate incrementa la versión de la empresa: todas las entradas anteriores
// quedan irrecuperables aunque sigan vivas en Redis hasta su TTL.
func TestQuoteCache_InvalidateVersiona(t *testing.T) {
	qc, _ := newTestCache(t)
	ctx := context.Background()

	qc.Put(ctx, testCompanyID, "clave-a", testQuote())
	_, ok := qc.Get(ctx, testCompanyID, "clave-a")
	require.True(t, ok)

	require.NoError(t, qc.Invalidate(ctx, testCompanyID))

	_, ok = qc.Get(ctx, testCompanyID, "clave-a")
	assert.False(t, ok, "tras invalidar, la entrada vieja no debe ser visible")

	// Una escritura posterior vive bajo la versión nueva.
	qc.Put(ctx, testCompanyID, "clave-a", testQuote())
	_, ok = qc.Get(ctx, testCompanyID, "clave-a")
	assert.True(t, ok)
}

// La invalidación es por empresa: otras empresas conservan su cache.
func TestQuoteCache_InvalidateNoAfectaOtrasEmpresas(t *testing.T) {
	qc, _ := newTestCache(t)
	ctx := context.Background()
	otherCompany := "22222222-2222-2222-2222-222222222222"

	qc.Put(ctx, testCompanyID, "clave-a", testQuote())
	qc.Put(ctx, otherCompany, "clave-a", testQuote())

	require.NoError(t, qc.Invalidate(ctx, testCompanyID))

	_, ok := qc.Get(ctx, testCompanyID, "clave-a")
	assert.False(t, ok)
	_, ok = qc.Get(ctx, otherCompany, "clave-a")
	assert.True(t, ok, "la invalidación de una empresa no debe tocar a las demás")
}

// Las entradas expiran solas por TTL aunque nadie invalide.
func TestQuoteCache_ExpiraPorTTL(t *testing.T) {
	qc, mr := newTestCache(t)
	ctx := context.Background()

	qc.Put(ctx, testCompanyID, "clave-a", testQuote())

	// miniredis no avanza el reloj solo; forzamos el paso del TTL.
	mr.FastForward(61 * time.Second)

	_, ok := qc.Get(ctx, testCompanyID, "clave-a")
	assert.False(t, ok, "pasado el TTL la entrada debe expirar")
}

// Redis caído se trata como miss: Get no falla y Put no rompe la respuesta.
func TestQuoteCache_RedisCaidoEsMiss(t *testing.T) {
	qc, mr := newTestCache(t)
	ctx := context.Background()

	qc.Put(ctx, testCompanyID, "clave-a", testQuote())
	mr.Close()

	_, ok := qc.Get(ctx, testCompanyID, "clave-a")
	assert.False(t, ok, "con Redis caído el Get debe ser miss, nunca error")

	// Invalidate sí reporta el error para que el caller lo loguee.
	assert.Error(t, qc.Invalidate(ctx, testCompanyID))
}
