package category_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/category"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

func TestNew(t *testing.T) {
	salary := &operation.Operation{ID: uuid.New(), Name: "Salary", Type: operation.TypeIncome}

	tests := []struct {
		name      string
		catName   string
		op        *operation.Operation
		wantField string
	}{
		{name: "valid", catName: "Monthly", op: salary},
		{name: "name at minimum", catName: "Tip", op: salary},
		{name: "name at maximum", catName: strings.Repeat("c", 64), op: salary},
		{name: "name too short", catName: "Ab", op: salary, wantField: "name"},
		{name: "name too long", catName: strings.Repeat("c", 65), op: salary, wantField: "name"},
		{name: "missing operation", catName: "Monthly", wantField: "operation_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := category.New(tt.catName, tt.op)

			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, *tt.op, got.Operation)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
		})
	}
}
