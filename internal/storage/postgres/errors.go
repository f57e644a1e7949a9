package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Admission is deliberately not transactional: the availability check, the
// reservation create, and the counter increment are separate statements
// serialized by the per-resource admission lock instead of a database
// transaction. Only the Postgres error classification helpers live here.

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
