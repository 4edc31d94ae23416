package transaction

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/money"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

var (
	ErrNotFound  = apperr.New(apperr.ErrNotFound, "TRANSACTION_NOT_FOUND", "Transaction not found")
	ErrForbidden = apperr.New(apperr.ErrForbidden, "FORBIDDEN", "Transaction belongs to another user")
)

// MaxAmount is the largest amount a single transaction may carry.
var MaxAmount = decimal.NewFromInt(99_999_999)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 255
)

// Transaction is one movement of money recorded by its owner.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    category.Category
	Money       money.Money
	Description *string
	Date        time.Time
}

// New builds a transaction. A blank description is treated as absent.
func New(userID uuid.UUID, cat category.Category, m money.Money, description *string, date time.Time) (*Transaction, error) {
	tx := &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Category:    cat,
		Money:       m,
		Description: normalizeDescription(description),
		Date:        date,
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

func (t *Transaction) Validate() error {
	var v apperr.ValidationError

	if t.UserID == uuid.Nil {
		v.Add("user_id", "is required")
	}
	if t.Category.ID == uuid.Nil {
		v.Add("category_id", "is required")
	}
	if t.Money.Currency().ID == uuid.Nil {
		v.Add("currency_id", "is required")
	}

	amount := t.Money.Amount()
	switch {
	case !amount.IsPositive():
		v.Add("amount", "must be greater than 0")
	case amount.GreaterThan(MaxAmount):
		v.Add("amount", "must be at most %s", MaxAmount)
	case !amount.Equal(amount.Round(2)):
		v.Add("amount", "must have at most 2 decimal places")
	}

	if t.Description != nil {
		v.CheckLength("description", *t.Description, minDescriptionLen, maxDescriptionLen)
	}

	if t.Date.IsZero() {
		v.Add("date", "is required")
	}

	return v.Err()
}

func (t *Transaction) Amount() decimal.Decimal { return t.Money.Amount() }

func (t *Transaction) Currency() currency.Currency { return t.Money.Currency() }

func (t *Transaction) Operation() operation.Operation { return t.Category.Operation }

func (t *Transaction) OwnedBy(userID uuid.UUID) bool { return t.UserID == userID }

// normalizeDescription drops a blank description. Any other text is kept as
// given so the length bounds apply to what the user submitted.
func normalizeDescription(d *string) *string {
	if d == nil || strings.TrimSpace(*d) == "" {
		return nil
	}

	return d
}
