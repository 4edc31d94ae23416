package transaction

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/importer"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
)

// parseFilter reads listing filters from the query string. The user_id
// parameter is only honoured when withUser is set.
func parseFilter(q url.Values, withUser bool) (transaction.Filter, error) {
	var (
		filter transaction.Filter
		v      apperr.ValidationError
	)

	filter.CategoryIDs = ids(q, "category_id", &v)
	filter.OperationIDs = ids(q, "operation_id", &v)
	filter.CurrencyIDs = ids(q, "currency_id", &v)

	if withUser {
		filter.UserIDs = ids(q, "user_id", &v)
	}

	from := date(q, "date_from", &v)
	to := date(q, "date_to", &v)
	lo := amount(q, "amount_min", &v)
	hi := amount(q, "amount_max", &v)

	if err := v.Err(); err != nil {
		return transaction.Filter{}, err
	}

	if from != nil || to != nil {
		dates, err := transaction.NewDateRange(from, to)
		if err != nil {
			return transaction.Filter{}, err
		}
		filter.Dates = dates
	}

	if lo != nil || hi != nil {
		amounts, err := transaction.NewAmountRange(lo, hi)
		if err != nil {
			return transaction.Filter{}, err
		}
		filter.Amounts = amounts
	}

	return filter, nil
}

func ids(q url.Values, key string, v *apperr.ValidationError) []uuid.UUID {
	var out []uuid.UUID

	for _, s := range q[key] {
		id, err := uuid.Parse(s)
		if err != nil {
			v.Add(key, "must be a valid id")
			continue
		}
		out = append(out, id)
	}

	return out
}

// date parses key as a day or timestamp. date_to given as a bare day covers
// that whole day.
func date(q url.Values, key string, v *apperr.ValidationError) *time.Time {
	s := q.Get(key)
	if s == "" {
		return nil
	}

	t, err := importer.ParseDate(s)
	if err != nil {
		v.Add(key, "must be YYYY-MM-DD or RFC 3339")
		return nil
	}

	if key == "date_to" && len(s) == len(time.DateOnly) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return &t
}

func amount(q url.Values, key string, v *apperr.ValidationError) *decimal.Decimal {
	s := q.Get(key)
	if s == "" {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		v.Add(key, "must be a number")
		return nil
	}

	return &d
}
