package currency

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=currency
type Repository interface {
	CreateCurrency(ctx context.Context, c *Currency) error
	GetCurrency(ctx context.Context, id uuid.UUID) (*Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*Currency, error)
	ListCurrencies(ctx context.Context) ([]*Currency, error)
	DeleteCurrency(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
	tx   database.Transactor
}

func NewService(repo Repository, tx database.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

type CreateParams struct {
	Code   string
	Name   string
	Symbol string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Currency, error) {
	c, err := New(params.Code, params.Name, params.Symbol)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.CreateCurrency(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("creating currency: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Currency, error) {
	return s.repo.GetCurrency(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Currency, error) {
	return s.repo.ListCurrencies(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetCurrency(ctx, id); err != nil {
			return err
		}

		return s.repo.DeleteCurrency(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting currency: %w", err)
	}

	return nil
}
