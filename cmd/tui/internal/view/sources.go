package view

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " cannot be empty")
		}
		return nil
	}
}

type operationSource struct {
	svc *operation.Service
}

func NewOperationsModel(svc *operation.Service) ReferenceModel {
	return NewReferenceModel(&operationSource{svc: svc})
}

func (s *operationSource) Title() string { return "Operations" }

func (s *operationSource) Columns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 12},
	}
}

func (s *operationSource) Load(ctx context.Context) ([]table.Row, []uuid.UUID, error) {
	ops, err := s.svc.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]table.Row, 0, len(ops))
	ids := make([]uuid.UUID, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, table.Row{op.Name, string(op.Type)})
		ids = append(ids, op.ID)
	}

	return rows, ids, nil
}

func (s *operationSource) NewForm() (*huh.Form, func(ctx context.Context) error) {
	var (
		name string
		typ  = operation.TypeExpense
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&name).Validate(required("name")),
			huh.NewSelect[operation.Type]().
				Key("type").
				Title("Type").
				Options(huh.NewOptions(operation.Types...)...).
				Value(&typ),
		),
	)

	return form, func(ctx context.Context) error {
		_, err := s.svc.Create(ctx, strings.TrimSpace(name), typ)
		return err
	}
}

func (s *operationSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.svc.Delete(ctx, id)
}

// categorySource keeps the operations of its last Load for the create form.
type categorySource struct {
	svc        *category.Service
	operations *operation.Service

	options []*operation.Operation
}

func NewCategoriesModel(svc *category.Service, operations *operation.Service) ReferenceModel {
	return NewReferenceModel(&categorySource{svc: svc, operations: operations})
}

func (s *categorySource) Title() string { return "Categories" }

func (s *categorySource) Columns() []table.Column {
	return []table.Column{
		{Title: "Operation", Width: 24},
		{Title: "Type", Width: 12},
		{Title: "Name", Width: 30},
	}
}

func (s *categorySource) Load(ctx context.Context) ([]table.Row, []uuid.UUID, error) {
	ops, err := s.operations.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.options = ops

	cats, err := s.svc.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]table.Row, 0, len(cats))
	ids := make([]uuid.UUID, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, table.Row{c.Operation.Name, string(c.Operation.Type), c.Name})
		ids = append(ids, c.ID)
	}

	return rows, ids, nil
}

func (s *categorySource) NewForm() (*huh.Form, func(ctx context.Context) error) {
	var (
		name        string
		operationID uuid.UUID
	)

	options := make([]huh.Option[uuid.UUID], 0, len(s.options))
	for _, op := range s.options {
		options = append(options, huh.NewOption(op.Name+" ("+string(op.Type)+")", op.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Key("operation").
				Title("Operation").
				Options(options...).
				Value(&operationID),
			huh.NewInput().Key("name").Title("Name").Value(&name).Validate(required("name")),
		),
	)

	return form, func(ctx context.Context) error {
		_, err := s.svc.Create(ctx, strings.TrimSpace(name), operationID)
		return err
	}
}

func (s *categorySource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.svc.Delete(ctx, id)
}

type currencySource struct {
	svc *currency.Service
}

func NewCurrenciesModel(svc *currency.Service) ReferenceModel {
	return NewReferenceModel(&currencySource{svc: svc})
}

func (s *currencySource) Title() string { return "Currencies" }

func (s *currencySource) Columns() []table.Column {
	return []table.Column{
		{Title: "Code", Width: 6},
		{Title: "Symbol", Width: 8},
		{Title: "Name", Width: 30},
	}
}

func (s *currencySource) Load(ctx context.Context) ([]table.Row, []uuid.UUID, error) {
	curs, err := s.svc.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]table.Row, 0, len(curs))
	ids := make([]uuid.UUID, 0, len(curs))
	for _, c := range curs {
		rows = append(rows, table.Row{c.Code, c.Symbol, c.Name})
		ids = append(ids, c.ID)
	}

	return rows, ids, nil
}

func (s *currencySource) NewForm() (*huh.Form, func(ctx context.Context) error) {
	var params currency.CreateParams

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("code").Title("Code").Placeholder("EUR").CharLimit(3).Value(&params.Code).Validate(required("code")),
			huh.NewInput().Key("name").Title("Name").Value(&params.Name).Validate(required("name")),
			huh.NewInput().Key("symbol").Title("Symbol").Value(&params.Symbol).Validate(required("symbol")),
		),
	)

	return form, func(ctx context.Context) error {
		_, err := s.svc.Create(ctx, params)
		return err
	}
}

func (s *currencySource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.svc.Delete(ctx, id)
}
