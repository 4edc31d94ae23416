package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
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

// scanCategory expects the column order of selectCategoryColumns.
func scanCategory(s scanner) (*category.Category, error) {
	var (
		c       category.Category
		typeStr string
	)

	if err := s.Scan(&c.ID, &c.Name, &c.Operation.ID, &c.Operation.Name, &typeStr); err != nil {
		return nil, err
	}

	c.Operation.Type = operation.Type(typeStr)

	return &c, nil
}

const selectCategoryColumns = `c.id, c.name, o.id, o.name, o.operation_type`

const fromCategories = ` FROM categories c JOIN operations o ON o.id = c.operation_id`

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, name, operation_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	_, err := database.Conn(ctx, s.db).ExecContext(ctx, query, c.ID, c.Name, c.Operation.ID)
	switch {
	case database.IsUniqueViolation(err):
		return category.ErrAlreadyExists
	case database.IsForeignKeyViolation(err):
		return operation.ErrNotFound
	case err != nil:
		return fmt.Errorf("inserting category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + fromCategories + ` WHERE c.id = $1`

	return s.getOne(ctx, query, id)
}

func (s *Store) FindCategory(ctx context.Context, operationName, name string) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + fromCategories + ` WHERE o.name = $1 AND c.name = $2`

	return s.getOne(ctx, query, operationName, name)
}

func (s *Store) getOne(ctx context.Context, query string, args ...any) (*category.Category, error) {
	c, err := scanCategory(database.Conn(ctx, s.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, operationID *uuid.UUID) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + fromCategories

	var args []any
	if operationID != nil {
		query += ` WHERE c.operation_id = $1`
		args = append(args, *operationID)
	}

	query += ` ORDER BY o.name, c.name`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return category.ErrNotDeletable
	}
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return category.ErrNotFound
	}

	return nil
}
