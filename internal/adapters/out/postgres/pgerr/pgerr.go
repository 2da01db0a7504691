// Package pgerr inspects PostgreSQL errors surfaced through gorm and the pgx driver.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE for unique_violation.
const UniqueViolation = "23505"

// UniqueConstraint reports whether err is a unique violation and, if so, the name of the
// violated constraint or index.
func UniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != UniqueViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err violates the named unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	name, ok := UniqueConstraint(err)
	return ok && name == constraint
}
