package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/panaderia-ops/internal/domain"
)

// Códigos SQLSTATE usados para traducir fallos del driver.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// writeError traduce un fallo de escritura: duplicado → ErrConflict, referencia inexistente → ErrNotFound;
// el resto queda como WriteFailure con la causa del driver.
func writeError(family domain.Family, op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrNotFound
	}
	return domain.WriteFailure(family, op, err)
}
