package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/operation"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
)

type transactionResponse struct {
	ID             uuid.UUID      `json:"transaction_id"`
	UserID         uuid.UUID      `json:"user_id"`
	CategoryID     uuid.UUID      `json:"category_id"`
	CategoryName   string         `json:"category_name"`
	OperationID    uuid.UUID      `json:"operation_id"`
	OperationName  string         `json:"operation_name"`
	OperationType  operation.Type `json:"operation_type"`
	CurrencyID     uuid.UUID      `json:"currency_id"`
	CurrencyCode   string         `json:"currency_code"`
	CurrencyName   string         `json:"currency_name"`
	CurrencySymbol string         `json:"currency_symbol"`
	Amount         string         `json:"amount"`
	Description    *string        `json:"description"`
	Date           time.Time      `json:"date"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	op := tx.Operation()
	cur := tx.Currency()

	return transactionResponse{
		ID:             tx.ID,
		UserID:         tx.UserID,
		CategoryID:     tx.Category.ID,
		CategoryName:   tx.Category.Name,
		OperationID:    op.ID,
		OperationName:  op.Name,
		OperationType:  op.Type,
		CurrencyID:     cur.ID,
		CurrencyCode:   cur.Code,
		CurrencyName:   cur.Name,
		CurrencySymbol: cur.Symbol,
		Amount:         tx.Amount().StringFixed(2),
		Description:    tx.Description,
		Date:           tx.Date,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

type totalResponse struct {
	OperationType  operation.Type `json:"operation_type"`
	CurrencyID     uuid.UUID      `json:"currency_id"`
	CurrencyCode   string         `json:"currency_code"`
	CurrencySymbol string         `json:"currency_symbol"`
	Amount         string         `json:"amount"`
	Count          int            `json:"count"`
}

func toTotalList(totals []transaction.Total) []totalResponse {
	resp := make([]totalResponse, len(totals))
	for i, t := range totals {
		cur := t.Money.Currency()
		resp[i] = totalResponse{
			OperationType:  t.Type,
			CurrencyID:     cur.ID,
			CurrencyCode:   cur.Code,
			CurrencySymbol: cur.Symbol,
			Amount:         t.Money.Amount().StringFixed(2),
			Count:          t.Count,
		}
	}

	return resp
}
