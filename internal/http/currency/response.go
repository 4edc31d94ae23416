package currency

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/currency"
)

type currencyResponse struct {
	ID     uuid.UUID `json:"currency_id"`
	Code   string    `json:"currency_code"`
	Name   string    `json:"currency_name"`
	Symbol string    `json:"currency_symbol"`
}

func toResponse(c *currency.Currency) currencyResponse {
	return currencyResponse{
		ID:     c.ID,
		Code:   c.Code,
		Name:   c.Name,
		Symbol: c.Symbol,
	}
}

func toResponseList(curs []*currency.Currency) []currencyResponse {
	resp := make([]currencyResponse, len(curs))
	for i, c := range curs {
		resp[i] = toResponse(c)
	}

	return resp
}
