package bank

import (
	"math"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

const (
	n26MinFields    = 8
	n26ColDate      = 0
	n26ColPartner   = 2
	n26ColReference = 5
	n26ColAmount    = 7
)

// N26Adapter parses N26 CSV exports (comma delimited, quoted fields, YYYY-MM-DD dates)
type N26Adapter struct{}

func (a *N26Adapter) ID() ID       { return N26 }
func (a *N26Adapter) Name() string { return "N26" }

func (a *N26Adapter) DateFormat() DateFormat {
	return DateFormat{Order: YearMonthDay, Separator: "-"}
}

func (a *N26Adapter) ValidateHeader(header string) error {
	return requireMarkers(header, a.Name(), "Booking Date", "Partner Name", "Amount (EUR)")
}

func (a *N26Adapter) ParseRows(content string) []entity.Transaction {
	var txs []entity.Transaction
	for _, line := range dataLines(content) {
		row := SplitRow(line, ',')
		if len(row) < n26MinFields {
			continue
		}

		amount, ok := parseAmount(trimQuotes(row[n26ColAmount]), false)
		if !ok {
			amount = math.NaN()
		}

		txs = keep(txs, entity.Transaction{
			Date:      trimQuotes(row[n26ColDate]),
			Payee:     trimQuotes(row[n26ColPartner]),
			Amount:    amount,
			Reference: trimQuotes(row[n26ColReference]),
		})
	}
	return txs
}
