package currency_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		curName   string
		symbol    string
		wantField string
	}{
		{name: "valid", code: "EUR", curName: "Euro", symbol: "€"},
		{name: "name at minimum", code: "USD", curName: "Usd", symbol: "$"},
		{name: "name at maximum", code: "USD", curName: strings.Repeat("a", 64), symbol: "$"},
		{name: "symbol at maximum", code: "UAH", curName: "Hryvnia", symbol: "гривня!!"},
		{name: "lowercase code", code: "eur", curName: "Euro", symbol: "€", wantField: "code"},
		{name: "short code", code: "EU", curName: "Euro", symbol: "€", wantField: "code"},
		{name: "long code", code: "EURO", curName: "Euro", symbol: "€", wantField: "code"},
		{name: "digits in code", code: "E1R", curName: "Euro", symbol: "€", wantField: "code"},
		{name: "name too short", code: "EUR", curName: "Eu", symbol: "€", wantField: "name"},
		{name: "name too long", code: "EUR", curName: strings.Repeat("a", 65), symbol: "€", wantField: "name"},
		{name: "empty symbol", code: "EUR", curName: "Euro", symbol: "", wantField: "symbol"},
		{name: "symbol too long", code: "EUR", curName: "Euro", symbol: "123456789", wantField: "symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := currency.New(tt.code, tt.curName, tt.symbol)

			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, tt.code, got.Code)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.wantField)
			assert.Nil(t, got)
		})
	}
}

func TestCurrency_Label(t *testing.T) {
	c := currency.Currency{Code: "EUR", Symbol: "€"}

	assert.Equal(t, "EUR €", c.Label())
}
