package currency

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "CURRENCY_NOT_FOUND", "Currency not found")
	ErrAlreadyExists = apperr.New(apperr.ErrAlreadyExists, "CURRENCY_ALREADY_EXISTS", "Currency with this code already exists")
	ErrNotDeletable  = apperr.New(apperr.ErrNotDeletable, "CURRENCY_NOT_DELETABLE", "Currency is still used by transactions")
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is the unit a transaction amount is expressed in.
type Currency struct {
	ID     uuid.UUID
	Code   string // ISO 4217 style, e.g. EUR
	Name   string
	Symbol string
}

func New(code, name, symbol string) (*Currency, error) {
	c := &Currency{
		ID:     uuid.New(),
		Code:   code,
		Name:   name,
		Symbol: symbol,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Currency) Validate() error {
	var v apperr.ValidationError

	if !codePattern.MatchString(c.Code) {
		v.Add("code", "must be exactly 3 uppercase letters")
	}
	v.CheckLength("name", c.Name, 3, 64)
	v.CheckLength("symbol", c.Symbol, 1, 8)

	return v.Err()
}

// Label is the human readable form used by autocomplete, e.g. "EUR €".
func (c *Currency) Label() string {
	return c.Code + " " + c.Symbol
}
