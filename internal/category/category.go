package category

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

var (
	ErrNotFound      = apperr.New(apperr.ErrNotFound, "CATEGORY_NOT_FOUND", "Category not found")
	ErrAlreadyExists = apperr.New(apperr.ErrAlreadyExists, "CATEGORY_ALREADY_EXISTS", "Category with this name already exists for the operation")
	ErrNotDeletable  = apperr.New(apperr.ErrNotDeletable, "CATEGORY_NOT_DELETABLE", "Category is still used by transactions")
)

// Category groups transactions under exactly one Operation.
type Category struct {
	ID        uuid.UUID
	Name      string
	Operation operation.Operation
}

func New(name string, op *operation.Operation) (*Category, error) {
	c := &Category{
		ID:   uuid.New(),
		Name: name,
	}
	if op != nil {
		c.Operation = *op
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Category) Validate() error {
	var v apperr.ValidationError

	v.CheckLength("name", c.Name, 3, 64)
	if c.Operation.ID == uuid.Nil {
		v.Add("operation_id", "is required")
	}

	return v.Err()
}
