// Package importer reads and writes the semicolon separated transaction file
// users upload and download.
//
// The header row names the columns, so their order may vary:
//
//	date;operation;category;currency;amount;description
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/encoding"
	"github.com/MrJamesThe3rd/fintrack/internal/transaction"
)

const (
	ColDate        = "date"
	ColOperation   = "operation"
	ColCategory    = "category"
	ColCurrency    = "currency"
	ColAmount      = "amount"
	ColDescription = "description"

	separator = ';'
)

// Header is the column order Write produces.
var Header = []string{ColDate, ColOperation, ColCategory, ColCurrency, ColAmount, ColDescription}

var required = Header[:5]

// colIndex maps a column name to its position in a row.
type colIndex map[string]int

func (c colIndex) cell(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}

// Parse reads every data row of r. Bad rows fail the whole file with a
// validation error naming the line.
func Parse(r io.Reader) ([]transaction.ImportRow, error) {
	utf8r, _, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = separator
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperr.Invalid("file", "is empty")
	}
	if err != nil {
		return nil, csvError(err)
	}

	cols, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []transaction.ImportRow

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}

		line, _ := reader.FieldPos(0)

		row, err := parseRow(cols, record, line)
		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, apperr.Invalid("file", "contains no transactions")
	}

	return rows, nil
}

func indexHeader(header []string) (colIndex, error) {
	cols := make(colIndex, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, apperr.Invalid("file", "missing column %q", name)
		}
	}

	return cols, nil
}

func parseRow(cols colIndex, record []string, line int) (transaction.ImportRow, error) {
	field := fmt.Sprintf("line %d", line)

	date, err := ParseDate(cols.cell(record, ColDate))
	if err != nil {
		return transaction.ImportRow{}, apperr.Invalid(field, "date %q must be YYYY-MM-DD or RFC 3339", cols.cell(record, ColDate))
	}

	amount, err := ParseAmount(cols.cell(record, ColAmount))
	if err != nil {
		return transaction.ImportRow{}, apperr.Invalid(field, "amount %q is not a number", cols.cell(record, ColAmount))
	}

	row := transaction.ImportRow{
		Line:          line,
		Date:          date,
		OperationName: cols.cell(record, ColOperation),
		CategoryName:  cols.cell(record, ColCategory),
		CurrencyCode:  strings.ToUpper(cols.cell(record, ColCurrency)),
		Amount:        amount,
	}

	for _, name := range []string{ColOperation, ColCategory, ColCurrency} {
		if cols.cell(record, name) == "" {
			return transaction.ImportRow{}, apperr.Invalid(field, "%s is required", name)
		}
	}

	if d := cols.cell(record, ColDescription); d != "" {
		row.Description = &d
	}

	return row, nil
}

// ParseDate accepts a bare date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

// ParseAmount accepts "." or "," as the decimal separator. When both appear
// the later one is the decimal separator and the other groups thousands,
// so "1.234,56" and "1,234.56" are the same amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, " ", "")

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	return decimal.NewFromString(s)
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return apperr.Invalid(fmt.Sprintf("line %d", perr.Line), "%s", perr.Err.Error())
	}

	return fmt.Errorf("reading csv: %w", err)
}

// Write renders txs in the format Parse reads.
func Write(w io.Writer, txs []*transaction.Transaction) error {
	writer := csv.NewWriter(w)
	writer.Comma = separator

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		var description string
		if tx.Description != nil {
			description = *tx.Description
		}

		record := []string{
			tx.Date.Format(time.DateOnly),
			tx.Operation().Name,
			tx.Category.Name,
			tx.Currency().Code,
			tx.Amount().StringFixed(2),
			description,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
