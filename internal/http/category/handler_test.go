package category_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
	httpcategory "github.com/MrJamesThe3rd/fintrack/internal/http/category"
	"github.com/MrJamesThe3rd/fintrack/internal/http/handlertest"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

var expense = &operation.Operation{ID: uuid.New(), Name: "Expense", Type: operation.TypeExpense}

type mocks struct {
	repo       *category.MockRepository
	operations *category.MockOperationReader
}

func newHandler(t *testing.T, setupMock func(m mocks)) *httpcategory.Handler {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:       category.NewMockRepository(ctrl),
		operations: category.NewMockOperationReader(ctrl),
	}

	if setupMock != nil {
		setupMock(m)
	}

	return httpcategory.NewHandler(category.NewService(m.repo, m.operations, databasetest.Passthrough(ctrl)))
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
		wantType   string
	}{
		{
			name: "Created",
			body: `{"category_name":"Food","operation_id":"` + expense.ID.String() + `"}`,
			setupMock: func(m mocks) {
				m.operations.EXPECT().GetOperation(gomock.Any(), expense.ID).Return(expense, nil)
				m.repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "BadOperationID",
			body:       `{"category_name":"Food","operation_id":"x"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   "INVALID_BODY",
		},
		{
			name: "UnknownOperation",
			body: `{"category_name":"Food","operation_id":"` + expense.ID.String() + `"}`,
			setupMock: func(m mocks) {
				m.operations.EXPECT().GetOperation(gomock.Any(), expense.ID).Return(nil, operation.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantType:   "OPERATION_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, tt.setupMock)

			r := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(tt.body))
			r = handlertest.As(r, handlertest.User(user.RoleAdmin))

			w := handlertest.Serve("/categories", h.Routes, r)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, handlertest.ErrorType(t, w))
				return
			}

			c := handlertest.Decode(t, w)["category"].(map[string]any)
			assert.Equal(t, "Food", c["category_name"])
			assert.Equal(t, "Expense", c["operation_name"])
			assert.Equal(t, "expense", c["operation_type"])
		})
	}
}

func TestHandler_Autocomplete(t *testing.T) {
	food := &category.Category{ID: uuid.New(), Name: "Food", Operation: *expense}

	tests := []struct {
		name      string
		query     string
		setupMock func(m mocks)
	}{
		{
			name:  "ByOperation",
			query: "?operation_id=" + expense.ID.String(),
			setupMock: func(m mocks) {
				m.repo.EXPECT().ListCategories(gomock.Any(), &expense.ID).Return([]*category.Category{food}, nil)
			},
		},
		{
			name:  "MalformedOperationIgnored",
			query: "?operation_id=nope",
			setupMock: func(m mocks) {
				m.repo.EXPECT().ListCategories(gomock.Any(), gomock.Nil()).Return([]*category.Category{food}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, tt.setupMock)

			r := httptest.NewRequest(http.MethodGet, "/categories/autocomplete"+tt.query, nil)
			w := handlertest.Serve("/categories", h.Routes, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `[{"label":"Food","value":"`+food.ID.String()+`"}]`, w.Body.String())
		})
	}
}

func TestHandler_Delete_NotAdmin(t *testing.T) {
	h := newHandler(t, nil)

	r := httptest.NewRequest(http.MethodDelete, "/categories/"+uuid.NewString(), nil)
	r = handlertest.As(r, handlertest.User(user.RoleMember))

	w := handlertest.Serve("/categories", h.Routes, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
