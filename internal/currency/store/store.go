package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectCurrencyColumns = `id, code, name, symbol`

func scanCurrency(s scanner) (*currency.Currency, error) {
	var c currency.Currency
	if err := s.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) CreateCurrency(ctx context.Context, c *currency.Currency) error {
	query := `
		INSERT INTO currencies (id, code, name, symbol, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := database.Conn(ctx, s.db).ExecContext(ctx, query, c.ID, c.Code, c.Name, c.Symbol)
	if database.IsUniqueViolation(err) {
		return currency.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("inserting currency: %w", err)
	}

	return nil
}

func (s *Store) GetCurrency(ctx context.Context, id uuid.UUID) (*currency.Currency, error) {
	query := `SELECT ` + selectCurrencyColumns + ` FROM currencies WHERE id = $1`

	return s.getOne(ctx, query, id)
}

func (s *Store) GetCurrencyByCode(ctx context.Context, code string) (*currency.Currency, error) {
	query := `SELECT ` + selectCurrencyColumns + ` FROM currencies WHERE code = $1`

	return s.getOne(ctx, query, code)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*currency.Currency, error) {
	c, err := scanCurrency(database.Conn(ctx, s.db).QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, currency.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting currency: %w", err)
	}

	return c, nil
}

func (s *Store) ListCurrencies(ctx context.Context) ([]*currency.Currency, error) {
	query := `SELECT ` + selectCurrencyColumns + ` FROM currencies ORDER BY code`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing currencies: %w", err)
	}
	defer rows.Close()

	var currencies []*currency.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning currency: %w", err)
		}

		currencies = append(currencies, c)
	}

	return currencies, rows.Err()
}

func (s *Store) DeleteCurrency(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM currencies WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return currency.ErrNotDeletable
	}
	if err != nil {
		return fmt.Errorf("deleting currency: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting currency: %w", err)
	}
	if n == 0 {
		return currency.ErrNotFound
	}

	return nil
}
