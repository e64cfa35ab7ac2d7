package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/servicepros/pricebook-api/internal/domain"
)

// mapError traduce errores del driver a la taxonomía de dominio:
//   - 23505 / 23503 / 23514  -> ErrConstraint (unicidad, FK, rango)
//   - 40001 / 40P01          -> ErrConflict (serialización, deadlock; reintentar)
//   - 57014                  -> ErrTimeout (query cancelada por deadline)
//   - clase 08 / conexión    -> ErrStoreUnavailable (reintentar)
//
// op describe la operación para el mensaje envuelto.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" || pgErr.Code == "23503" || pgErr.Code == "23514":
			return fmt.Errorf("%s: %w", op, domain.ErrConstraint)
		case pgErr.Code == "40001" || pgErr.Code == "40P01":
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case pgErr.Code == "57014":
			return fmt.Errorf("%s: %w", op, domain.ErrTimeout)
		case strings.HasPrefix(pgErr.Code, "08"):
			return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
		}
	}
	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likeEscaper escapa los metacaracteres de LIKE/ILIKE. El backslash va primero
// para no re-escapar los que introduce el propio reemplazo.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike prepara un término de usuario para usarlo como literal dentro de
// un patrón ILIKE: "50%" busca el texto 50%, no un prefijo arbitrario.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
