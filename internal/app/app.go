// Package app wires stores and services over one database handle.
package app

import (
	"database/sql"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	categoryStore "github.com/MrJamesThe3rd/fintrack/internal/category/store"
	"github.com/MrJamesThe3rd/fintrack/internal/crypto"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	currencyStore "github.com/MrJamesThe3rd/fintrack/internal/currency/store"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	operationStore "github.com/MrJamesThe3rd/fintrack/internal/operation/store"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	txStore "github.com/MrJamesThe3rd/fintrack/internal/transaction/store"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
	userStore "github.com/MrJamesThe3rd/fintrack/internal/user/store"
)

type Services struct {
	Users        *user.Service
	Operations   *operation.Service
	Categories   *category.Service
	Currencies   *currency.Service
	Transactions *transaction.Service
}

// NewServices binds every service to db. bcryptCost falls back to the
// library default when out of range.
func NewServices(db *sql.DB, bcryptCost int) *Services {
	var (
		tx         = database.NewTxManager(db)
		users      = userStore.New(db)
		operations = operationStore.New(db)
		categories = categoryStore.New(db)
		currencies = currencyStore.New(db)
	)

	return &Services{
		Users:        user.NewService(users, users, crypto.NewBcrypt(bcryptCost), tx),
		Operations:   operation.NewService(operations, tx),
		Categories:   category.NewService(categories, operations, tx),
		Currencies:   currency.NewService(currencies, tx),
		Transactions: transaction.NewService(txStore.New(db), categories, currencies, tx),
	}
}
