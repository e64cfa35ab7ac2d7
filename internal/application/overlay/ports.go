package overlay

import "context"

// QuoteInvalidator invalida las cotizaciones cacheadas de una empresa.
// Lo implementa el cache de infraestructura; toda escritura de overlay o de
// tarifas DEBE invocarlo para que nunca se sirva una cotización obsoleta.
type QuoteInvalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}
