package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter Filter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type CategoryReader interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error)
	FindCategory(ctx context.Context, operationName, name string) (*category.Category, error)
}

type CurrencyReader interface {
	GetCurrency(ctx context.Context, id uuid.UUID) (*currency.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*currency.Currency, error)
}

type Service struct {
	repo       Repository
	categories CategoryReader
	currencies CurrencyReader
	tx         database.Transactor
}

func NewService(repo Repository, categories CategoryReader, currencies CurrencyReader, tx database.Transactor) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		currencies: currencies,
		tx:         tx,
	}
}

type CreateParams struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	CurrencyID  uuid.UUID
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	var tx *Transaction

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cat, err := s.categories.GetCategory(ctx, params.CategoryID)
		if err != nil {
			return err
		}

		cur, err := s.currencies.GetCurrency(ctx, params.CurrencyID)
		if err != nil {
			return err
		}

		tx, err = build(params.UserID, cat, cur, params.Amount, params.Description, params.Date)
		if err != nil {
			return err
		}

		return s.repo.CreateTransaction(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

func build(
	userID uuid.UUID,
	cat *category.Category,
	cur *currency.Currency,
	amount decimal.Decimal,
	description *string,
	date time.Time,
) (*Transaction, error) {
	m, err := money.New(amount, *cur)
	if err != nil {
		return nil, err
	}

	return New(userID, *cat, m, description, date)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListByUser ignores any user set on filter.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, error) {
	filter.UserIDs = []uuid.UUID{userID}

	return s.repo.ListTransactions(ctx, filter)
}

// Delete removes a transaction owned by userID. The record is left intact
// when another user owns it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := s.repo.GetTransaction(ctx, id)
		if err != nil {
			return err
		}

		if !tx.OwnedBy(userID) {
			return ErrForbidden
		}

		return s.repo.DeleteTransaction(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, filter Filter) ([]Total, error) {
	txs, err := s.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return Summarize(txs)
}

// ImportRow is one parsed line of an uploaded statement. References are by
// natural key, since the file knows nothing about ids.
type ImportRow struct {
	Line          int
	Date          time.Time
	OperationName string
	CategoryName  string
	CurrencyCode  string
	Amount        decimal.Decimal
	Description   *string
}

// Import stores every row for userID or none of them.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, apperr.Invalid("file", "contains no transactions")
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		categories := make(map[[2]string]*category.Category)
		currencies := make(map[string]*currency.Currency)

		for _, row := range rows {
			catKey := [2]string{row.OperationName, row.CategoryName}

			cat, ok := categories[catKey]
			if !ok {
				var err error
				if cat, err = s.categories.FindCategory(ctx, row.OperationName, row.CategoryName); err != nil {
					return lineError(row.Line, err)
				}
				categories[catKey] = cat
			}

			cur, ok := currencies[row.CurrencyCode]
			if !ok {
				var err error
				if cur, err = s.currencies.GetCurrencyByCode(ctx, row.CurrencyCode); err != nil {
					return lineError(row.Line, err)
				}
				currencies[row.CurrencyCode] = cur
			}

			tx, err := build(userID, cat, cur, row.Amount, row.Description, row.Date)
			if err != nil {
				return lineError(row.Line, err)
			}

			if err := s.repo.CreateTransaction(ctx, tx); err != nil {
				return lineError(row.Line, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("importing transactions: %w", err)
	}

	return len(rows), nil
}

// lineError reports bad rows as validation failures of the uploaded file.
// Infrastructure errors pass through untouched.
func lineError(line int, err error) error {
	var appErr *apperr.Error

	var verr *apperr.ValidationError

	field := fmt.Sprintf("line %d", line)

	switch {
	case errors.As(err, &verr):
		return apperr.Invalid(field, "%s", verr.Error())
	case errors.As(err, &appErr) && errors.Is(err, apperr.ErrNotFound):
		return apperr.Invalid(field, "%s", appErr.Message)
	default:
		return fmt.Errorf("%s: %w", field, err)
	}
}
