package pages

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

func (p *Pages) admin(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "admin", view{Title: "Administration"})
}

// adminPage renders one reference-data screen. A nil err means a plain GET.
func (p *Pages) adminPage(w http.ResponseWriter, r *http.Request, page, title string, load func() (any, error), form map[string]string, err error) {
	status := http.StatusOK

	var errs map[string]string
	if err != nil {
		var ok bool
		if status, errs, ok = formErrors(err); !ok {
			p.serverError(w, r, err)
			return
		}
	}

	data, loadErr := load()
	if loadErr != nil {
		p.serverError(w, r, loadErr)
		return
	}

	p.render(w, r, status, page, view{Title: title, Form: form, Errors: errs, Data: data})
}

type operationsData struct {
	Types      []operation.Type
	Operations []*operation.Operation
}

func (p *Pages) loadOperations(r *http.Request) func() (any, error) {
	return func() (any, error) {
		ops, err := p.Operations.List(r.Context())
		return operationsData{Types: operation.Types, Operations: ops}, err
	}
}

func (p *Pages) adminOperations(w http.ResponseWriter, r *http.Request) {
	p.adminPage(w, r, "admin_operations", "Operations", p.loadOperations(r), nil, nil)
}

func (p *Pages) createOperation(w http.ResponseWriter, r *http.Request) {
	typ, err := operation.ParseType(r.PostFormValue("type"))
	if err == nil {
		_, err = p.Operations.Create(r.Context(), strings.TrimSpace(r.PostFormValue("name")), typ)
	}

	if err == nil {
		http.Redirect(w, r, "/admin/operations", http.StatusSeeOther)
		return
	}

	p.adminPage(w, r, "admin_operations", "Operations", p.loadOperations(r), formValues(r, "name", "type"), err)
}

func (p *Pages) deleteOperation(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, operation.ErrNotFound)
	if err == nil {
		err = p.Operations.Delete(r.Context(), id)
	}

	p.afterDelete(w, r, "/admin/operations", "admin_operations", "Operations", p.loadOperations(r), err)
}

type categoriesData struct {
	Operations []*operation.Operation
	Categories []*category.Category
}

func (p *Pages) loadCategories(r *http.Request) func() (any, error) {
	return func() (any, error) {
		ops, err := p.Operations.List(r.Context())
		if err != nil {
			return nil, err
		}

		cats, err := p.Categories.List(r.Context())

		return categoriesData{Operations: ops, Categories: cats}, err
	}
}

func (p *Pages) adminCategories(w http.ResponseWriter, r *http.Request) {
	p.adminPage(w, r, "admin_categories", "Categories", p.loadCategories(r), nil, nil)
}

func (p *Pages) createCategory(w http.ResponseWriter, r *http.Request) {
	var err error

	operationID, parseErr := uuid.Parse(r.PostFormValue("operation_id"))
	if parseErr != nil {
		err = apperr.Invalid("operation_id", "is required")
	} else {
		_, err = p.Categories.Create(r.Context(), strings.TrimSpace(r.PostFormValue("name")), operationID)
	}

	if err == nil {
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	p.adminPage(w, r, "admin_categories", "Categories", p.loadCategories(r), formValues(r, "name", "operation_id"), err)
}

func (p *Pages) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, category.ErrNotFound)
	if err == nil {
		err = p.Categories.Delete(r.Context(), id)
	}

	p.afterDelete(w, r, "/admin/categories", "admin_categories", "Categories", p.loadCategories(r), err)
}

type currenciesData struct {
	Currencies []*currency.Currency
}

func (p *Pages) loadCurrencies(r *http.Request) func() (any, error) {
	return func() (any, error) {
		curs, err := p.Currencies.List(r.Context())
		return currenciesData{Currencies: curs}, err
	}
}

func (p *Pages) adminCurrencies(w http.ResponseWriter, r *http.Request) {
	p.adminPage(w, r, "admin_currencies", "Currencies", p.loadCurrencies(r), nil, nil)
}

func (p *Pages) createCurrency(w http.ResponseWriter, r *http.Request) {
	_, err := p.Currencies.Create(r.Context(), currency.CreateParams{
		Code:   strings.ToUpper(strings.TrimSpace(r.PostFormValue("code"))),
		Name:   strings.TrimSpace(r.PostFormValue("name")),
		Symbol: strings.TrimSpace(r.PostFormValue("symbol")),
	})
	if err == nil {
		http.Redirect(w, r, "/admin/currencies", http.StatusSeeOther)
		return
	}

	p.adminPage(w, r, "admin_currencies", "Currencies", p.loadCurrencies(r), formValues(r, "code", "name", "symbol"), err)
}

func (p *Pages) deleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, currency.ErrNotFound)
	if err == nil {
		err = p.Currencies.Delete(r.Context(), id)
	}

	p.afterDelete(w, r, "/admin/currencies", "admin_currencies", "Currencies", p.loadCurrencies(r), err)
}

// afterDelete redirects back to the listing or shows why the row stayed.
func (p *Pages) afterDelete(w http.ResponseWriter, r *http.Request, back, page, title string, load func() (any, error), err error) {
	if err == nil {
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	p.adminPage(w, r, page, title, load, nil, err)
}
