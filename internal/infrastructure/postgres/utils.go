package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/retail-analytics-api/internal/domain/repository"
)

// isUniqueViolation detecta el código 23505 de PostgreSQL (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// sortClause arma "ORDER BY col dir" validando la columna contra una lista
// blanca. sortBy llega del query string: nunca se interpola sin validar.
func sortClause(allowed map[string]bool, sortBy, fallback, order string) string {
	col := fallback
	if allowed[sortBy] {
		col = sortBy
	}
	dir := "ASC"
	if order == repository.SortDesc {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}
