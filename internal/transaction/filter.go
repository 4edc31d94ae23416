package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

// Filter narrows a listing. Empty slices and nil pointers match everything.
type Filter struct {
	UserIDs      []uuid.UUID
	CategoryIDs  []uuid.UUID
	OperationIDs []uuid.UUID
	CurrencyIDs  []uuid.UUID
	Dates        *DateRange
	Amounts      *AmountRange
}

// DateRange is inclusive on both ends. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func NewDateRange(from, to *time.Time) (*DateRange, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperr.Invalid("date_from", "must not be after date_to")
	}

	return &DateRange{From: from, To: to}, nil
}

func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// AmountRange is inclusive on both ends. A nil bound is open.
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func NewAmountRange(lo, hi *decimal.Decimal) (*AmountRange, error) {
	var v apperr.ValidationError

	if lo != nil && lo.IsNegative() {
		v.Add("amount_min", "must not be negative")
	}
	if hi != nil && hi.IsNegative() {
		v.Add("amount_max", "must not be negative")
	}
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		v.Add("amount_min", "must not be greater than amount_max")
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	return &AmountRange{Min: lo, Max: hi}, nil
}

func (r AmountRange) Contains(d decimal.Decimal) bool {
	if r.Min != nil && d.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && d.GreaterThan(*r.Max) {
		return false
	}
	return true
}
