package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/servicepros/pricebook-api/internal/application/overlay"
	apppricing "github.com/servicepros/pricebook-api/internal/application/pricing"
	"github.com/servicepros/pricebook-api/internal/domain/pricing"
	"github.com/servicepros/pricebook-api/pkg/logger"
)

// quoteTTL límite duro de vida de una entrada. La invalidación por versión es
// best-effort; el TTL corto acota el daño si un INCR se pierde.
const quoteTTL = 60 * time.Second

var (
	_ apppricing.QuoteCache    = (*QuoteCache)(nil)
	_ overlay.QuoteInvalidator = (*QuoteCache)(nil)
)

// QuoteCache memoización de cotizaciones en Redis, versionada por empresa:
// cada escritura de overlay o tarifas incrementa la versión y vuelve
// irrecuperables todas las claves anteriores de esa empresa.
type QuoteCache struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewQuoteCache construye el cache sobre un cliente Redis ya conectado.
func NewQuoteCache(rdb *redis.Client, log *logger.Logger) *QuoteCache {
	return &QuoteCache{rdb: rdb, log: log}
}

// Get devuelve la cotización cacheada bajo la versión vigente de la empresa.
// Cualquier fallo de Redis se trata como miss: el caller recalcula.
func (c *QuoteCache) Get(ctx context.Context, companyID, key string) (*pricing.Quote, bool) {
	data, err := c.rdb.Get(ctx, c.quoteKey(ctx, companyID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("company_id", companyID).Msg("cache get falló, recalculando")
		}
		return nil, false
	}
	var q pricing.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, false
	}
	return &q, true
}

// Put guarda la cotización. Best-effort: un fallo de Redis no afecta la respuesta.
func (c *QuoteCache) Put(ctx context.Context, companyID, key string, q *pricing.Quote) {
	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.quoteKey(ctx, companyID, key), data, quoteTTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("company_id", companyID).Msg("cache put falló")
	}
}

// Invalidate incrementa la versión de la empresa. No borra claves: las entradas
// viejas quedan huérfanas y expiran solas por TTL.
func (c *QuoteCache) Invalidate(ctx context.Context, companyID string) error {
	if err := c.rdb.Incr(ctx, versionKey(companyID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar el cache de cotizaciones")
		return err
	}
	return nil
}

// quoteKey arma la clave final incluyendo la versión vigente de la empresa.
func (c *QuoteCache) quoteKey(ctx context.Context, companyID, key string) string {
	ver, err := c.rdb.Get(ctx, versionKey(companyID)).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("pricebook:quote:%s:%s:%s", companyID, ver, key)
}

func versionKey(companyID string) string {
	return "pricebook:quote:ver:" + companyID
}
