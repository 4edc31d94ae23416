// Package databasetest provides database doubles for service and store tests.
package databasetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

// Passthrough returns a Transactor that runs every unit of work directly.
func Passthrough(ctrl *gomock.Controller) *database.MockTransactor {
	tx := database.NewMockTransactor(ctrl)
	tx.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	return tx
}

// SQLMock opens a driver double. Every expectation must be met by the end of
// the test.
func SQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}

// UniqueViolation is the error Postgres reports for a duplicate key.
func UniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ForeignKeyViolation is the error Postgres reports for a missing or still
// referenced row.
func ForeignKeyViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}
