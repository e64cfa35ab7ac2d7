package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/servicepros/pricebook-api/internal/domain"
	"github.com/servicepros/pricebook-api/internal/domain/entity"
	"github.com/servicepros/pricebook-api/internal/domain/pricing"
)

// Escenarios de referencia del motor de precios: servicio EL-01-A-001 con
// base_price=100.0000 y base_labor_hours=1.50, empresa con tarifa de mano de
// obra 45.00/h y tasa de impuesto 0.0850 por defecto. Los montos esperados son
// exactos: cualquier desviación de redondeo rompe estos tests.

var asOfJun = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func demoService() *entity.MasterService {
	return &entity.MasterService{
		Code:            "EL-01-A-001",
		SubcategoryCode: "EL-01",
		Name:            "Replace standard outlet",
		BasePrice:       dec("100.0000"),
		BaseLaborHours:  dec("1.50"),
		Unit:            "each",
		Active:          true,
	}
}

func demoSnapshot() pricing.Snapshot {
	return pricing.Snapshot{
		Service:   demoService(),
		LaborRate: dec("45.00"),
		TaxRate:   dec("0.0850"),
	}
}

func demoRequest(qty string) pricing.Request {
	return pricing.Request{Quantity: dec(qty), AsOf: asOfJun}
}

// Sin override: base 200, mano de obra 135, subtotal 335, impuesto 28.48, total 363.48.
func TestResolve_SinOverride(t *testing.T) {
	q, err := pricing.Resolve(demoSnapshot(), demoRequest("2"), pricing.RoundHalfEven)
	require.NoError(t, err)

	assertDecEq(t, "200.0000", q.BaseUnitPrice.Mul(q.Quantity))
	assertDecEq(t, "3.00", q.LaborHours)
	assertDecEq(t, "135.0000", q.LaborCost)
	assertDecEq(t, "335.0000", q.LineSubtotal)
	assertDecEq(t, "28.48", q.TaxAmount)
	assertDecEq(t, "363.48", q.Total)
}

// Override percent +10: base unitario 110, subtotal 355, impuesto 30.18, total 385.18.
func TestResolve_OverridePorcentual(t *testing.T) {
	snap := demoSnapshot()
	snap.Override = &entity.CompanyService{
		CompanyID:       "c1",
		ServiceCode:     "EL-01-A-001",
		AdjustmentKind:  entity.AdjustPercent,
		AdjustmentValue: dec("10"),
	}

	q, err := pricing.Resolve(snap, demoRequest("2"), pricing.RoundHalfEven)
	require.NoError(t, err)

	assertDecEq(t, "110.0000", q.BaseUnitPrice)
	assertDecEq(t, "355.0000", q.LineSubtotal)
	assertDecEq(t, "30.18", q.TaxAmount)
	assertDecEq(t, "385.18", q.Total)
}

// Override absolute 0: el servicio se regala pero la mano de obra se cobra.
func TestResolve_OverrideAbsolutoCero(t *testing.T) {
	snap := demoSnapshot()
	snap.Override = &entity.CompanyService{
		CompanyID:       "c1",
		ServiceCode:     "EL-01-A-001",
		AdjustmentKind:  entity.AdjustAbsolute,
		AdjustmentValue: decimal.Zero,
	}

	q, err := pricing.Resolve(snap, demoRequest("2"), pricing.RoundHalfEven)
	require.NoError(t, err)

	assert.True(t, q.BaseUnitPrice.IsZero())
	assertDecEq(t, "135.0000", q.LineSubtotal)
	assertDecEq(t, "11.48", q.TaxAmount)
	assertDecEq(t, "146.48", q.Total)
}

// Override hidden: falla aunque el maestro esté activo, y gana sobre inactivo.
func TestResolve_OverrideHidden(t *testing.T) {
	snap := demoSnapshot()
	snap.Override = &entity.CompanyService{
		CompanyID:      "c1",
		ServiceCode:    "EL-01-A-001",
		AdjustmentKind: entity.AdjustHidden,
	}

	_, err := pricing.Resolve(snap, demoRequest("2"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrServiceHidden)

	// hidden gana sobre inactive
	snap.Service.Active = false
	_, err = pricing.Resolve(snap, demoRequest("2"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrServiceHidden)
}

// as_of anterior a toda tarifa: mano de obra 0 e impuesto del default (0 aquí).
func TestResolve_SinTarifasVigentes(t *testing.T) {
	snap := demoSnapshot()
	snap.LaborRate = decimal.Zero
	snap.TaxRate = decimal.Zero

	q, err := pricing.Resolve(snap, pricing.Request{
		Quantity: dec("2"),
		AsOf:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}, pricing.RoundHalfEven)
	require.NoError(t, err)

	assert.True(t, q.LaborCost.IsZero())
	assert.True(t, q.TaxAmount.IsZero())
	assertDecEq(t, "200.0000", q.LineSubtotal)
	assertDecEq(t, "200.00", q.Total)
}

func TestResolve_ServicioDesconocido(t *testing.T) {
	snap := pricing.Snapshot{Service: nil}
	_, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrServiceUnknown)
}

// Un override huérfano (sin fila maestra) no convierte el error en otra cosa.
func TestResolve_ServicioDesconocido_ConOverrideHuerfano(t *testing.T) {
	snap := pricing.Snapshot{
		Service:  nil,
		Override: &entity.CompanyService{AdjustmentKind: entity.AdjustHidden},
	}
	_, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrServiceUnknown)
}

func TestResolve_ServicioInactivo(t *testing.T) {
	snap := demoSnapshot()
	snap.Service.Active = false
	_, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrServiceInactive)
}

func TestResolve_CantidadNegativa(t *testing.T) {
	_, err := pricing.Resolve(demoSnapshot(), demoRequest("-1"), pricing.RoundHalfEven)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cantidad 0 es válida: montos de línea en cero pero el precio unitario
// ajustado se conserva (útil para mostrar el catálogo).
func TestResolve_CantidadCero(t *testing.T) {
	snap := demoSnapshot()
	snap.Override = &entity.CompanyService{
		AdjustmentKind:  entity.AdjustPercent,
		AdjustmentValue: dec("10"),
	}

	q, err := pricing.Resolve(snap, demoRequest("0"), pricing.RoundHalfEven)
	require.NoError(t, err)

	assertDecEq(t, "110.0000", q.BaseUnitPrice)
	assert.True(t, q.LaborCost.IsZero())
	assert.True(t, q.LineSubtotal.IsZero())
	assert.True(t, q.Total.IsZero())
}

// percent -100 como piso: el ajuste nunca produce un precio negativo.
func TestResolve_PorcentajePiso(t *testing.T) {
	snap := demoSnapshot()
	snap.Override = &entity.CompanyService{
		AdjustmentKind:  entity.AdjustPercent,
		AdjustmentValue: dec("-100"),
	}

	q, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfEven)
	require.NoError(t, err)
	assert.True(t, q.BaseUnitPrice.IsZero())
}

// half_up difiere de half_even exactamente en los empates .xx5.
func TestResolve_ModoHalfUp(t *testing.T) {
	snap := demoSnapshot()

	// 165 * 0.0450 = 7.425: half_even -> 7.42 (par), half_up -> 7.43.
	snap.Service.BasePrice = dec("165.0000")
	snap.Service.BaseLaborHours = decimal.Zero
	snap.TaxRate = dec("0.0450")

	even, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfEven)
	require.NoError(t, err)
	up, err := pricing.Resolve(snap, demoRequest("1"), pricing.RoundHalfUp)
	require.NoError(t, err)

	assertDecEq(t, "7.42", even.TaxAmount)
	assertDecEq(t, "7.43", up.TaxAmount)
}

// Pureza: dos invocaciones con las mismas entradas son idénticas campo a campo.
func TestResolve_Determinista(t *testing.T) {
	q1, err1 := pricing.Resolve(demoSnapshot(), demoRequest("2"), pricing.RoundHalfEven)
	q2, err2 := pricing.Resolve(demoSnapshot(), demoRequest("2"), pricing.RoundHalfEven)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, q1, q2)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecEq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got.String())
}
