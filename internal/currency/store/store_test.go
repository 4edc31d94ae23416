package store_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/currency/store"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
)

var (
	insertCurrency = regexp.QuoteMeta("INSERT INTO currencies")
	deleteCurrency = regexp.QuoteMeta("DELETE FROM currencies WHERE id = $1")
	currencyCols   = []string{"id", "code", "name", "symbol"}
)

func TestStore_CreateThenGetByCode(t *testing.T) {
	db, mock := databasetest.SQLMock(t)
	s := store.New(db)

	c, err := currency.New("EUR", "Euro", "€")
	require.NoError(t, err)

	mock.ExpectExec(insertCurrency).
		WithArgs(c.ID, "EUR", "Euro", "€").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM currencies WHERE code = $1")).
		WithArgs("EUR").
		WillReturnRows(sqlmock.NewRows(currencyCols).AddRow(c.ID.String(), c.Code, c.Name, c.Symbol))

	require.NoError(t, s.CreateCurrency(context.Background(), c))

	got, err := s.GetCurrencyByCode(context.Background(), "EUR")

	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestStore_CreateCurrencyDuplicateCode(t *testing.T) {
	db, mock := databasetest.SQLMock(t)
	mock.ExpectExec(insertCurrency).WillReturnError(databasetest.UniqueViolation("currencies_code_key"))

	c, err := currency.New("EUR", "Euro", "€")
	require.NoError(t, err)

	err = store.New(db).CreateCurrency(context.Background(), c)

	assert.ErrorIs(t, err, currency.ErrAlreadyExists)
}

func TestStore_GetCurrencyMissing(t *testing.T) {
	db, mock := databasetest.SQLMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM currencies WHERE id = $1")).WillReturnRows(sqlmock.NewRows(currencyCols))

	_, err := store.New(db).GetCurrency(context.Background(), uuid.New())

	assert.ErrorIs(t, err, currency.ErrNotFound)
}

func TestStore_DeleteCurrency(t *testing.T) {
	tests := []struct {
		name    string
		result  int64
		dbErr   error
		wantErr error
	}{
		{name: "Deleted", result: 1},
		{name: "Missing", result: 0, wantErr: currency.ErrNotFound},
		{name: "StillReferenced", dbErr: databasetest.ForeignKeyViolation("transactions_currency_id_fkey"), wantErr: currency.ErrNotDeletable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := databasetest.SQLMock(t)

			id := uuid.New()
			exp := mock.ExpectExec(deleteCurrency).WithArgs(id)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result))
			}

			err := store.New(db).DeleteCurrency(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
