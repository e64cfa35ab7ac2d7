package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RatePoint una tarifa con su instante de entrada en vigencia.
type RatePoint struct {
	EffectiveFrom time.Time
	Rate          decimal.Decimal
}

// RateSchedule secuencia ordenada ascendente por EffectiveFrom. Los intervalos
// son semiabiertos [effective_from, siguiente.effective_from): aplica la fila
// con mayor EffectiveFrom <= T. Filas con vigencia futura son inertes hasta su
// instante.
type RateSchedule []RatePoint

// NewRateSchedule construye el schedule ordenando una copia de los puntos.
func NewRateSchedule(points []RatePoint) RateSchedule {
	s := make(RateSchedule, len(points))
	copy(s, points)
	sort.Slice(s, func(i, j int) bool { return s[i].EffectiveFrom.Before(s[j].EffectiveFrom) })
	return s
}

// At devuelve la tarifa aplicable en t (búsqueda binaria). ok=false si ninguna
// fila tiene EffectiveFrom <= t.
func (s RateSchedule) At(t time.Time) (decimal.Decimal, bool) {
	// Primer índice con EffectiveFrom > t; el aplicable es el anterior.
	i := sort.Search(len(s), func(i int) bool { return s[i].EffectiveFrom.After(t) })
	if i == 0 {
		return decimal.Zero, false
	}
	return s[i-1].Rate, true
}
