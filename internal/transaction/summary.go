package transaction

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/money"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

// Total is the sum of every transaction sharing an operation type and currency.
type Total struct {
	Type  operation.Type
	Money money.Money
	Count int
}

// Summarize groups txs by operation type and currency.
// Totals are ordered by operation.Types, then by currency code.
func Summarize(txs []*Transaction) ([]Total, error) {
	type key struct {
		typ        operation.Type
		currencyID uuid.UUID
	}

	index := make(map[key]int)
	var totals []Total

	for _, tx := range txs {
		k := key{typ: tx.Operation().Type, currencyID: tx.Currency().ID}

		i, ok := index[k]
		if !ok {
			i = len(totals)
			index[k] = i
			totals = append(totals, Total{Type: k.typ, Money: money.Zero(tx.Currency())})
		}

		sum, err := totals[i].Money.Add(tx.Money)
		if err != nil {
			return nil, fmt.Errorf("summing transaction %s: %w", tx.ID, err)
		}

		totals[i].Money = sum
		totals[i].Count++
	}

	slices.SortFunc(totals, func(a, b Total) int {
		if c := cmp.Compare(slices.Index(operation.Types, a.Type), slices.Index(operation.Types, b.Type)); c != 0 {
			return c
		}
		return cmp.Compare(a.Money.Currency().Code, b.Money.Currency().Code)
	})

	return totals, nil
}
