package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de precios, expuestos en /metrics cuando METRICS_ENABLED=true.
var (
	QuotesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebook_quotes_resolved_total",
		Help: "Cotizaciones resueltas con éxito.",
	})

	QuoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricebook_quote_failures_total",
		Help: "Cotizaciones fallidas, por tipo de error.",
	}, []string{"kind"})

	QuoteCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricebook_quote_cache_hits_total",
		Help: "Cotizaciones servidas desde el cache.",
	})
)
