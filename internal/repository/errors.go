package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Store-level errors surfaced to the service layer. Callers match them
// with errors.Is instead of inspecting Postgres codes.
var (
	ErrContactExists  = errors.New("contact already exists")
	ErrStudentExists  = errors.New("student already exists")
	ErrContactMissing = errors.New("contact does not exist")
)

// PostgreSQL error codes mapped at this boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
