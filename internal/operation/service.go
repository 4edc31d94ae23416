package operation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=operation
type Repository interface {
	CreateOperation(ctx context.Context, op *Operation) error
	GetOperation(ctx context.Context, id uuid.UUID) (*Operation, error)
	ListOperations(ctx context.Context) ([]*Operation, error)
	DeleteOperation(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) Create(ctx context.Context, name string, typ Type) (*Operation, error) {
	op, err := New(name, typ)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.CreateOperation(ctx, op)
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}

	return op, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Operation, error) {
	return s.repo.GetOperation(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Operation, error) {
	return s.repo.ListOperations(ctx)
}

// Delete fails with ErrNotDeletable while any category still points at the operation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetOperation(ctx, id); err != nil {
			return err
		}

		return s.repo.DeleteOperation(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting operation: %w", err)
	}

	return nil
}
