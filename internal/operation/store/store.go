package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

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

func scanOperation(s scanner) (*operation.Operation, error) {
	var (
		op      operation.Operation
		typeStr string
	)

	if err := s.Scan(&op.ID, &op.Name, &typeStr); err != nil {
		return nil, err
	}

	op.Type = operation.Type(typeStr)

	return &op, nil
}

const selectOperationColumns = `id, name, operation_type`

func (s *Store) CreateOperation(ctx context.Context, op *operation.Operation) error {
	query := `
		INSERT INTO operations (id, name, operation_type, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	_, err := database.Conn(ctx, s.db).ExecContext(ctx, query, op.ID, op.Name, op.Type)
	if database.IsUniqueViolation(err) {
		return operation.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("inserting operation: %w", err)
	}

	return nil
}

func (s *Store) GetOperation(ctx context.Context, id uuid.UUID) (*operation.Operation, error) {
	query := `SELECT ` + selectOperationColumns + ` FROM operations WHERE id = $1`

	op, err := scanOperation(database.Conn(ctx, s.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, operation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting operation: %w", err)
	}

	return op, nil
}

func (s *Store) ListOperations(ctx context.Context) ([]*operation.Operation, error) {
	query := `SELECT ` + selectOperationColumns + ` FROM operations ORDER BY name`

	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*operation.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}

		ops = append(ops, op)
	}

	return ops, rows.Err()
}

func (s *Store) DeleteOperation(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return operation.ErrNotDeletable
	}
	if err != nil {
		return fmt.Errorf("deleting operation: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return operation.ErrNotFound
	}

	return nil
}
