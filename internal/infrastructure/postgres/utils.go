package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// violatedConstraint nombre del constraint violado, "" si no es un error de PostgreSQL.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// validUUID evita enviar a PostgreSQL IDs que la columna uuid rechazaría con un error 22P02.
// Un ID mal formado equivale a "no existe".
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
