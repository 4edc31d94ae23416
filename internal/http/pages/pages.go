// Package pages serves the server-rendered site.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/http/security"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
	appweb "github.com/MrJamesThe3rd/fintrack/web"
)

const staticMaxAge = 24 * 60 * 60

var pageNames = []string{
	"home", "login", "register", "transactions", "statistics",
	"admin", "admin_operations", "admin_categories", "admin_currencies",
	"not_found", "error",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format(time.DateOnly) },
}

type Deps struct {
	Users        *user.Service
	Sessions     *session.Manager
	Operations   *operation.Service
	Categories   *category.Service
	Currencies   *currency.Service
	Transactions *transaction.Service
}

type Pages struct {
	Deps
	templates map[string]*template.Template
}

// New parses every page against the shared layout.
func New(deps Deps) (*Pages, error) {
	templates := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(appweb.TemplatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		templates[name] = t
	}

	return &Pages{Deps: deps, templates: templates}, nil
}

func (p *Pages) Routes(r chi.Router) {
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err == nil {
		r.With(security.CacheStatic(staticMaxAge)).
			Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	r.Get("/", p.home)
	r.Get("/login", p.loginForm)
	r.Post("/login", p.login)
	r.Get("/register", p.registerForm)
	r.Post("/register", p.register)
	r.Post("/logout", p.logout)

	r.Group(func(r chi.Router) {
		r.Use(requireLogin)
		r.Get("/transactions", p.transactions)
		r.Post("/transactions", p.createTransaction)
		r.Post("/transactions/{id}/delete", p.deleteTransaction)
		r.Get("/statistics", p.statistics)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireLogin, p.requireAdmin)
		r.Get("/", p.admin)
		r.Get("/operations", p.adminOperations)
		r.Post("/operations", p.createOperation)
		r.Post("/operations/{id}/delete", p.deleteOperation)
		r.Get("/categories", p.adminCategories)
		r.Post("/categories", p.createCategory)
		r.Post("/categories/{id}/delete", p.deleteCategory)
		r.Get("/currencies", p.adminCurrencies)
		r.Post("/currencies", p.createCurrency)
		r.Post("/currencies/{id}/delete", p.deleteCurrency)
	})
}

// view is the data every template receives.
type view struct {
	Title   string
	User    *user.User
	IsAdmin bool
	Form    map[string]string
	Errors  map[string]string
	Flash   string
	Data    any
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	if u, ok := session.UserFrom(r.Context()); ok {
		v.User = u
		v.IsAdmin = u.HasRole(user.RoleAdmin)
	}

	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", v); err != nil {
		respond.Log(r, "failed to render page", fmt.Errorf("template %s: %w", name, err))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page.
func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, "not_found", view{Title: "Not found"})
}

func (p *Pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	respond.Log(r, "page request failed", err)
	p.render(w, r, http.StatusInternalServerError, "error", view{Title: "Error"})
}

// formErrors maps err onto inline form messages. Errors outside the domain
// taxonomy are reported as not ok and should go to serverError.
func formErrors(err error) (int, map[string]string, bool) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, verr.Fields, true
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		if status := respond.Status(err); status != http.StatusInternalServerError {
			return status, map[string]string{"form": appErr.Message}, true
		}
	}

	return http.StatusInternalServerError, nil, false
}

// formValues copies the posted fields that may be echoed back into a form.
func formValues(r *http.Request, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		values[k] = r.PostFormValue(k)
	}

	return values
}

func requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireAdmin hides the admin area from everyone else.
func (p *Pages) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := session.UserFrom(r.Context()); !ok || !u.HasRole(user.RoleAdmin) {
			p.NotFound(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (p *Pages) home(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "home", view{Title: "Home"})
}
