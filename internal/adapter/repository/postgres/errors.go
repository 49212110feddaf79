package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrUniqueViolation is the SQLSTATE for unique constraint violations.
const pgErrUniqueViolation = "23505"

// Unique constraints the repositories translate into domain errors.
const (
	constraintAccountNumber = "accounts_account_number_key"
)

// isUniqueViolation reports whether err is a unique constraint violation.
// With constraint names given, only violations of those constraints match.
func isUniqueViolation(err error, constraints ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrUniqueViolation {
		return false
	}

	if len(constraints) == 0 {
		return true
	}

	for _, name := range constraints {
		if pgErr.ConstraintName == name {
			return true
		}
	}

	return false
}
