package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/servicepros/pricebook-api/internal/domain/pricing"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRateSchedule_At(t *testing.T) {
	s := pricing.NewRateSchedule([]pricing.RatePoint{
		{EffectiveFrom: day(2025, 7, 1), Rate: dec("55.00")},
		{EffectiveFrom: day(2025, 1, 1), Rate: dec("45.00")},
	})

	// Antes de toda vigencia: no hay tarifa.
	_, ok := s.At(day(2024, 12, 31))
	assert.False(t, ok)

	// Exactamente en el instante de vigencia: la fila ya aplica.
	r, ok := s.At(day(2025, 1, 1))
	assert.True(t, ok)
	assertDecEq(t, "45.00", r)

	// Dentro del intervalo semiabierto [ene, jul).
	r, _ = s.At(day(2025, 6, 30))
	assertDecEq(t, "45.00", r)

	// La fila futura entra en vigencia en su instante, no antes.
	r, _ = s.At(day(2025, 7, 1))
	assertDecEq(t, "55.00", r)

	r, _ = s.At(day(2030, 1, 1))
	assertDecEq(t, "55.00", r)
}

func TestRateSchedule_Vacio(t *testing.T) {
	var s pricing.RateSchedule
	r, ok := s.At(day(2025, 1, 1))
	assert.False(t, ok)
	assert.True(t, r.Equal(decimal.Zero))
}

// El constructor ordena una copia: el slice de entrada no se modifica.
func TestRateSchedule_NoMutaEntrada(t *testing.T) {
	in := []pricing.RatePoint{
		{EffectiveFrom: day(2025, 7, 1), Rate: dec("55.00")},
		{EffectiveFrom: day(2025, 1, 1), Rate: dec("45.00")},
	}
	_ = pricing.NewRateSchedule(in)
	assert.Equal(t, day(2025, 7, 1), in[0].EffectiveFrom)
}
