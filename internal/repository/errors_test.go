package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsPgCode(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}

	require.True(t, isPgCode(unique, pgUniqueViolation))
	require.False(t, isPgCode(unique, pgForeignKeyViolation))
	require.True(t, isPgCode(fk, pgForeignKeyViolation))

	// Wrapped errors still match.
	wrapped := fmt.Errorf("insert student: %w", unique)
	require.True(t, isPgCode(wrapped, pgUniqueViolation))

	require.False(t, isPgCode(errors.New("plain"), pgUniqueViolation))
	require.False(t, isPgCode(nil, pgUniqueViolation))
}
