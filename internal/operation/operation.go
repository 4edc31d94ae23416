package operation

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "OPERATION_NOT_FOUND", "Operation not found")
	ErrAlreadyExists = apperr.New(apperr.ErrAlreadyExists, "OPERATION_ALREADY_EXISTS", "Operation with this name already exists")
	ErrNotDeletable  = apperr.New(apperr.ErrNotDeletable, "OPERATION_NOT_DELETABLE", "Operation is still used by categories")
)

// Type classifies the direction of money for an operation.
type Type string

const (
	TypeIncome     Type = "income"
	TypeExpense    Type = "expense"
	TypeInvestment Type = "investment"
)

// Types lists every valid Type in display order.
var Types = []Type{TypeIncome, TypeExpense, TypeInvestment}

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment:
		return true
	}
	return false
}

// ParseType returns the Type named by s.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", apperr.Invalid("type", "must be one of income, expense, investment")
	}
	return t, nil
}

// Operation is a named classification such as "Salary" or "Groceries".
type Operation struct {
	ID   uuid.UUID
	Name string
	Type Type
}

func New(name string, typ Type) (*Operation, error) {
	op := &Operation{
		ID:   uuid.New(),
		Name: name,
		Type: typ,
	}

	if err := op.Validate(); err != nil {
		return nil, err
	}

	return op, nil
}

func (o *Operation) Validate() error {
	var v apperr.ValidationError

	v.CheckLength("name", o.Name, 3, 64)
	if !o.Type.Valid() {
		v.Add("type", "must be one of income, expense, investment")
	}

	return v.Err()
}
