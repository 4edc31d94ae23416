package pages_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
	"github.com/MrJamesThe3rd/fintrack/internal/http/handlertest"
	"github.com/MrJamesThe3rd/fintrack/internal/http/pages"
	"github.com/MrJamesThe3rd/fintrack/internal/money"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

var (
	expense = operation.Operation{ID: uuid.New(), Name: "Expense", Type: operation.TypeExpense}
	food    = category.Category{ID: uuid.New(), Name: "Food", Operation: expense}
	eur     = currency.Currency{ID: uuid.New(), Code: "EUR", Name: "Euro", Symbol: "€"}
)

type mocks struct {
	users        *user.MockRepository
	roles        *user.MockRoleRepository
	hasher       *user.MockPasswordHasher
	operations   *operation.MockRepository
	categories   *category.MockRepository
	currencies   *currency.MockRepository
	transactions *transaction.MockRepository
}

func newRouter(t *testing.T, setupMock func(m mocks)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	tx := databasetest.Passthrough(ctrl)

	m := mocks{
		users:        user.NewMockRepository(ctrl),
		roles:        user.NewMockRoleRepository(ctrl),
		hasher:       user.NewMockPasswordHasher(ctrl),
		operations:   operation.NewMockRepository(ctrl),
		categories:   category.NewMockRepository(ctrl),
		currencies:   currency.NewMockRepository(ctrl),
		transactions: transaction.NewMockRepository(ctrl),
	}
	if setupMock != nil {
		setupMock(m)
	}

	users := user.NewService(m.users, m.roles, m.hasher, tx)

	p, err := pages.New(pages.Deps{
		Users:      users,
		Sessions:   session.NewManager("test-secret", time.Hour, false, users),
		Operations: operation.NewService(m.operations, tx),
		Categories: category.NewService(m.categories, m.operations, tx),
		Currencies: currency.NewService(m.currencies, tx),
		Transactions: transaction.NewService(
			m.transactions,
			transaction.NewMockCategoryReader(ctrl),
			transaction.NewMockCurrencyReader(ctrl),
			tx,
		),
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	p.Routes(router)
	router.NotFound(p.NotFound)

	return router
}

func get(path string, u *user.User) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if u != nil {
		r = handlertest.As(r, u)
	}

	return r
}

func post(path string, form url.Values, u *user.User) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if u != nil {
		r = handlertest.As(r, u)
	}

	return r
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func TestPages_Access(t *testing.T) {
	member := handlertest.User(user.RoleMember)

	tests := []struct {
		name         string
		req          *http.Request
		wantStatus   int
		wantLocation string
		wantBody     string
	}{
		{name: "home is public", req: get("/", nil), wantStatus: http.StatusOK, wantBody: "Create an account"},
		{name: "login form", req: get("/login", nil), wantStatus: http.StatusOK, wantBody: `name="email"`},
		{name: "register form", req: get("/register", nil), wantStatus: http.StatusOK, wantBody: `name="password_confirm"`},
		{name: "transactions need login", req: get("/transactions", nil), wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{name: "statistics need login", req: get("/statistics", nil), wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{name: "admin needs login", req: get("/admin", nil), wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{name: "admin hidden from members", req: get("/admin", member), wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "admin forms hidden from members", req: post("/admin/operations", url.Values{}, member), wantStatus: http.StatusNotFound},
		{name: "admin home", req: get("/admin", handlertest.User(user.RoleAdmin)), wantStatus: http.StatusOK, wantBody: "/admin/currencies"},
		{name: "unknown page", req: get("/nope", nil), wantStatus: http.StatusNotFound, wantBody: "Page not found"},
		{name: "static assets", req: get("/static/app.css", nil), wantStatus: http.StatusOK, wantBody: "--accent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(t, nil), tt.req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestPages_Login(t *testing.T) {
	alice := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "$2a$hash"}

	tests := []struct {
		name       string
		form       url.Values
		setupMock  func(m mocks)
		wantStatus int
		wantBody   string
	}{
		{
			name: "Success",
			form: url.Values{"email": {"alice@example.com"}, "password": {"secret123"}},
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(alice, nil)
				m.hasher.EXPECT().Verify("$2a$hash", "secret123").Return(true)
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name: "WrongPassword",
			form: url.Values{"email": {"alice@example.com"}, "password": {"nope"}},
			setupMock: func(m mocks) {
				m.users.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(alice, nil)
				m.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid email or password",
		},
		{
			name:       "MissingPassword",
			form:       url.Values{"email": {"alice@example.com"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(t, tt.setupMock), post("/login", tt.form, nil))

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
				assert.Contains(t, w.Body.String(), `value="alice@example.com"`)
				return
			}

			assert.Equal(t, "/transactions", w.Header().Get("Location"))
			assert.Contains(t, w.Header().Get("Set-Cookie"), session.CookieName+"=")
		})
	}
}

func TestPages_RegisterPasswordMismatch(t *testing.T) {
	form := url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret124"},
	}

	w := serve(newRouter(t, nil), post("/register", form, nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "does not match")
}

func TestPages_Logout(t *testing.T) {
	w := serve(newRouter(t, nil), post("/logout", nil, handlertest.User(user.RoleMember)))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func sample(t *testing.T, owner uuid.UUID, amount string) *transaction.Transaction {
	t.Helper()

	m, err := money.New(decimal.RequireFromString(amount), eur)
	require.NoError(t, err)

	desc := "Weekly groceries"
	tx, err := transaction.New(owner, food, m, &desc, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	return tx
}

func TestPages_Transactions(t *testing.T) {
	member := handlertest.User(user.RoleMember)

	w := serve(newRouter(t, func(m mocks) {
		m.categories.EXPECT().ListCategories(gomock.Any(), gomock.Nil()).Return([]*category.Category{&food}, nil)
		m.currencies.EXPECT().ListCurrencies(gomock.Any()).Return([]*currency.Currency{&eur}, nil)
		m.transactions.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{sample(t, member.ID, "12.5")}, nil)
	}), get("/transactions", member))

	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "12.50 EUR")
	assert.Contains(t, body, "Weekly groceries")
	assert.Contains(t, body, "2024-03-01")
	assert.Contains(t, body, "Expense / Food")
	assert.Contains(t, body, "EUR €")
}

func TestPages_CreateTransactionInvalid(t *testing.T) {
	member := handlertest.User(user.RoleMember)

	form := url.Values{
		"category_id": {food.ID.String()},
		"currency_id": {eur.ID.String()},
		"amount":      {"ten"},
		"date":        {"2024-03-01"},
	}

	w := serve(newRouter(t, func(m mocks) {
		m.categories.EXPECT().ListCategories(gomock.Any(), gomock.Nil()).Return([]*category.Category{&food}, nil)
		m.currencies.EXPECT().ListCurrencies(gomock.Any()).Return([]*currency.Currency{&eur}, nil)
		m.transactions.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)
	}), post("/transactions", form, member))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must be a number")
	assert.Contains(t, w.Body.String(), `value="ten"`)
}

func TestPages_Statistics(t *testing.T) {
	member := handlertest.User(user.RoleMember)

	w := serve(newRouter(t, func(m mocks) {
		m.transactions.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return([]*transaction.Transaction{sample(t, member.ID, "2.25"), sample(t, member.ID, "1")}, nil)
	}), get("/statistics", member))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "3.25 EUR")
}

func TestPages_CreateOperation(t *testing.T) {
	admin := handlertest.User(user.RoleAdmin)

	tests := []struct {
		name         string
		form         url.Values
		setupMock    func(m mocks)
		wantStatus   int
		wantBody     string
		wantLocation string
	}{
		{
			name: "Created",
			form: url.Values{"name": {"Salary"}, "type": {"income"}},
			setupMock: func(m mocks) {
				m.operations.EXPECT().CreateOperation(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/admin/operations",
		},
		{
			name: "NameTooShort",
			form: url.Values{"name": {"Sa"}, "type": {"income"}},
			setupMock: func(m mocks) {
				m.operations.EXPECT().ListOperations(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "must be at least 3 characters",
		},
		{
			name: "Duplicate",
			form: url.Values{"name": {"Salary"}, "type": {"income"}},
			setupMock: func(m mocks) {
				m.operations.EXPECT().CreateOperation(gomock.Any(), gomock.Any()).Return(operation.ErrAlreadyExists)
				m.operations.EXPECT().ListOperations(gomock.Any()).Return(nil, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Operation with this name already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(t, tt.setupMock), post("/admin/operations", tt.form, admin))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestPages_DeleteCurrencyInUse(t *testing.T) {
	admin := handlertest.User(user.RoleAdmin)

	w := serve(newRouter(t, func(m mocks) {
		m.currencies.EXPECT().GetCurrency(gomock.Any(), eur.ID).Return(&eur, nil)
		m.currencies.EXPECT().DeleteCurrency(gomock.Any(), eur.ID).Return(currency.ErrNotDeletable)
		m.currencies.EXPECT().ListCurrencies(gomock.Any()).Return([]*currency.Currency{&eur}, nil)
	}), post("/admin/currencies/"+eur.ID.String()+"/delete", nil, admin))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Currency is still used by transactions")
}
