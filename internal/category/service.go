package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindCategory looks a category up by its natural key.
	FindCategory(ctx context.Context, operationName, name string) (*Category, error)
	// ListCategories returns every category, or only those of operationID when it is set.
	ListCategories(ctx context.Context, operationID *uuid.UUID) ([]*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type OperationReader interface {
	GetOperation(ctx context.Context, id uuid.UUID) (*operation.Operation, error)
}

type Service struct {
	repo       Repository
	operations OperationReader
	tx         database.Transactor
}

func NewService(repo Repository, operations OperationReader, tx database.Transactor) *Service {
	return &Service{repo: repo, operations: operations, tx: tx}
}

func (s *Service) Create(ctx context.Context, name string, operationID uuid.UUID) (*Category, error) {
	var c *Category

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		op, err := s.operations.GetOperation(ctx, operationID)
		if err != nil {
			return err
		}

		c, err = New(name, op)
		if err != nil {
			return err
		}

		return s.repo.CreateCategory(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx, nil)
}

func (s *Service) ListByOperation(ctx context.Context, operationID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, &operationID)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetCategory(ctx, id); err != nil {
			return err
		}

		return s.repo.DeleteCategory(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}
