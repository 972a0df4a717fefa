package bank

import (
	"math"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// Wise statement columns used by the adapter. Only EUR rows are kept.
const (
	wiseMinFields      = 20
	wiseColDate        = 1
	wiseColAmount      = 2
	wiseColCurrency    = 3
	wiseColDescription = 4
	wiseColPayerName   = 10
	wiseColPayeeName   = 11
	wiseCurrency       = "EUR"
)

// WiseAdapter parses Wise statement exports (comma delimited, DD-MM-YYYY dates)
type WiseAdapter struct{}

func (a *WiseAdapter) ID() ID       { return Wise }
func (a *WiseAdapter) Name() string { return "Wise" }

func (a *WiseAdapter) DateFormat() DateFormat {
	return DateFormat{Order: DayMonthYear, Separator: "-"}
}

func (a *WiseAdapter) ValidateHeader(header string) error {
	return requireMarkers(header, a.Name(), "Date", "Amount", "Currency")
}

func (a *WiseAdapter) ParseRows(content string) []entity.Transaction {
	var txs []entity.Transaction
	for _, line := range dataLines(content) {
		row := SplitRow(line, ',')
		if len(row) < wiseMinFields {
			continue
		}

		if trimQuotes(row[wiseColCurrency]) != wiseCurrency {
			continue
		}

		description := trimQuotes(row[wiseColDescription])
		payee := trimQuotes(row[wiseColPayeeName])
		if payee == "" {
			payee = trimQuotes(row[wiseColPayerName])
		}
		if payee == "" {
			payee = description
		}

		amount, ok := parseAmount(trimQuotes(row[wiseColAmount]), false)
		if !ok {
			amount = math.NaN()
		}

		txs = keep(txs, entity.Transaction{
			Date:      trimQuotes(row[wiseColDate]),
			Payee:     payee,
			Amount:    amount,
			Reference: description,
		})
	}
	return txs
}
