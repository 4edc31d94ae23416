package pages

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/http/request"
	"github.com/MrJamesThe3rd/fintrack/internal/importer"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
)

var transactionFields = []string{"category_id", "currency_id", "amount", "date", "description"}

type transactionsData struct {
	Categories   []*category.Category
	Currencies   []*currency.Currency
	Transactions []*transaction.Transaction
}

func (p *Pages) loadTransactions(r *http.Request, userID uuid.UUID) (transactionsData, error) {
	var (
		data transactionsData
		err  error
	)

	if data.Categories, err = p.Categories.List(r.Context()); err != nil {
		return data, err
	}

	if data.Currencies, err = p.Currencies.List(r.Context()); err != nil {
		return data, err
	}

	data.Transactions, err = p.Transactions.ListByUser(r.Context(), userID, transaction.Filter{})

	return data, err
}

func (p *Pages) transactions(w http.ResponseWriter, r *http.Request) {
	u, _ := session.UserFrom(r.Context())

	data, err := p.loadTransactions(r, u.ID)
	if err != nil {
		p.serverError(w, r, err)
		return
	}

	v := view{
		Title: "Transactions",
		Form:  map[string]string{"date": time.Now().Format(time.DateOnly)},
		Data:  data,
	}
	if r.URL.Query().Get("saved") != "" {
		v.Flash = "Transaction saved."
	}

	p.render(w, r, http.StatusOK, "transactions", v)
}

type transactionForm struct {
	CategoryID  string `form:"category_id" validate:"required,uuid"`
	CurrencyID  string `form:"currency_id" validate:"required,uuid"`
	Amount      string `form:"amount" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Description string `form:"description"`
}

func (f transactionForm) params(userID uuid.UUID) (transaction.CreateParams, error) {
	var v apperr.ValidationError

	amount, err := importer.ParseAmount(f.Amount)
	if err != nil {
		v.Add("amount", "must be a number")
	}

	date, err := importer.ParseDate(f.Date)
	if err != nil {
		v.Add("date", "must be a valid date")
	}

	if err := v.Err(); err != nil {
		return transaction.CreateParams{}, err
	}

	params := transaction.CreateParams{
		UserID:     userID,
		CategoryID: uuid.MustParse(f.CategoryID),
		CurrencyID: uuid.MustParse(f.CurrencyID),
		Amount:     amount,
		Date:       date,
	}

	if f.Description != "" {
		params.Description = &f.Description
	}

	return params, nil
}

func (p *Pages) createTransaction(w http.ResponseWriter, r *http.Request) {
	u, _ := session.UserFrom(r.Context())

	form := transactionForm{
		CategoryID:  r.PostFormValue("category_id"),
		CurrencyID:  r.PostFormValue("currency_id"),
		Amount:      r.PostFormValue("amount"),
		Date:        r.PostFormValue("date"),
		Description: r.PostFormValue("description"),
	}

	err := request.Validate(&form)
	if err == nil {
		var params transaction.CreateParams
		if params, err = form.params(u.ID); err == nil {
			_, err = p.Transactions.Create(r.Context(), params)
		}
	}

	if err == nil {
		http.Redirect(w, r, "/transactions?saved=1", http.StatusSeeOther)
		return
	}

	status, errs, ok := formErrors(err)
	if !ok {
		p.serverError(w, r, err)
		return
	}

	data, err := p.loadTransactions(r, u.ID)
	if err != nil {
		p.serverError(w, r, err)
		return
	}

	p.render(w, r, status, "transactions", view{
		Title:  "Transactions",
		Form:   formValues(r, transactionFields...),
		Errors: errs,
		Data:   data,
	})
}

func (p *Pages) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	u, _ := session.UserFrom(r.Context())

	id, err := request.PathID(r, transaction.ErrNotFound)
	if err == nil {
		err = p.Transactions.Delete(r.Context(), u.ID, id)
	}

	if p.failRedirect(w, r, err) {
		return
	}

	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

type statisticsData struct {
	Totals []transaction.Total
}

func (p *Pages) statistics(w http.ResponseWriter, r *http.Request) {
	u, _ := session.UserFrom(r.Context())

	totals, err := p.Transactions.Summarize(r.Context(), u.ID, transaction.Filter{})
	if err != nil {
		p.serverError(w, r, err)
		return
	}

	p.render(w, r, http.StatusOK, "statistics", view{
		Title: "Statistics",
		Data:  statisticsData{Totals: totals},
	})
}

// failRedirect handles errors of redirect-after-post actions that have no
// form to re-render. Missing and foreign records look the same to the user.
func (p *Pages) failRedirect(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrForbidden):
		p.NotFound(w, r)
	default:
		if status, errs, ok := formErrors(err); ok {
			p.render(w, r, status, "error", view{Title: "Error", Errors: errs})
			return true
		}
		p.serverError(w, r, err)
	}

	return true
}
