// internal/repository/repository.go
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a postgres unique-index violation,
// used to map races on membership/email inserts to conflict sentinels.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Pagination bounds list queries. Limit falls back to the default when the
// caller passes zero.
type Pagination struct {
	Skip  int
	Limit int
}

const defaultLimit = 100

func (p Pagination) limitOrDefault() int {
	if p.Limit <= 0 {
		return defaultLimit
	}
	return p.Limit
}
