package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/money"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a row in the column order of selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx      transaction.Transaction
		amount  decimal.Decimal
		desc    sql.NullString
		typeStr string
		cur     currency.Currency
	)

	if err := s.Scan(
		&tx.ID, &tx.UserID, &amount, &desc, &tx.Date,
		&tx.Category.ID, &tx.Category.Name,
		&tx.Category.Operation.ID, &tx.Category.Operation.Name, &typeStr,
		&cur.ID, &cur.Code, &cur.Name, &cur.Symbol,
	); err != nil {
		return nil, err
	}

	tx.Category.Operation.Type = operation.Type(typeStr)
	if desc.Valid {
		tx.Description = &desc.String
	}

	m, err := money.New(amount, cur)
	if err != nil {
		return nil, fmt.Errorf("amount of transaction %s: %w", tx.ID, err)
	}
	tx.Money = m

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.user_id, t.amount, t.description, t.date,
	c.id, c.name,
	o.id, o.name, o.operation_type,
	cur.id, cur.code, cur.name, cur.symbol
`

const fromTransactions = `
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
	JOIN operations o ON o.id = c.operation_id
	JOIN currencies cur ON cur.id = t.currency_id
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, currency_id, amount, description, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := database.Conn(ctx, s.db).ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Category.ID,
		tx.Currency().ID,
		tx.Amount(),
		tx.Description,
		tx.Date,
	)
	if database.IsForeignKeyViolation(err) {
		if missing := missingReference(database.ConstraintName(err)); missing != nil {
			return missing
		}
	}
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

// missingReference maps a violated foreign key of the transactions table to
// the NotFound of the row it points at.
func missingReference(constraint string) error {
	switch {
	case strings.Contains(constraint, "currency"):
		return currency.ErrNotFound
	case strings.Contains(constraint, "category"):
		return category.ErrNotFound
	case strings.Contains(constraint, "user"):
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `WHERE t.id = $1`

	tx, err := scanTransaction(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.Filter) ([]*transaction.Transaction, error) {
	where, args := buildFilter(filter)

	query := `SELECT ` + selectTransactionColumns + fromTransactions + where + ` ORDER BY t.date DESC, t.id`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// buildFilter returns a WHERE clause (or "") and its positional arguments.
func buildFilter(filter transaction.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(filter.UserIDs) > 0 {
		add("t.user_id = ANY($%d::uuid[])", uuidStrings(filter.UserIDs))
	}
	if len(filter.CategoryIDs) > 0 {
		add("t.category_id = ANY($%d::uuid[])", uuidStrings(filter.CategoryIDs))
	}
	if len(filter.OperationIDs) > 0 {
		add("c.operation_id = ANY($%d::uuid[])", uuidStrings(filter.OperationIDs))
	}
	if len(filter.CurrencyIDs) > 0 {
		add("t.currency_id = ANY($%d::uuid[])", uuidStrings(filter.CurrencyIDs))
	}
	if r := filter.Dates; r != nil {
		if r.From != nil {
			add("t.date >= $%d", *r.From)
		}
		if r.To != nil {
			add("t.date <= $%d", *r.To)
		}
	}
	if r := filter.Amounts; r != nil {
		if r.Min != nil {
			add("t.amount >= $%d", *r.Min)
		}
		if r.Max != nil {
			add("t.amount <= $%d", *r.Max)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
