package bank

import (
	"math"
	"strings"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

const (
	fortuneoDelimiter = ";"
	fortuneoMinFields = 5
	fortuneoColDate   = 0
	fortuneoColLabel  = 2
	fortuneoColDebit  = 3
	fortuneoColCredit = 4
)

// FortuneoAdapter parses Fortuneo exports (semicolon delimited, unquoted, DD/MM/YYYY
// dates, decimal comma, separate debit and credit columns)
type FortuneoAdapter struct{}

func (a *FortuneoAdapter) ID() ID       { return Fortuneo }
func (a *FortuneoAdapter) Name() string { return "Fortuneo" }

func (a *FortuneoAdapter) DateFormat() DateFormat {
	return DateFormat{Order: DayMonthYear, Separator: "/"}
}

// ValidateHeader matches fragments of "Date opération;...;Débit;Crédit" that survive a
// mis-decoded accented export.
func (a *FortuneoAdapter) ValidateHeader(header string) error {
	return requireMarkers(header, a.Name(), "Date op", "bit", "dit")
}

func (a *FortuneoAdapter) ParseRows(content string) []entity.Transaction {
	var txs []entity.Transaction
	for _, line := range dataLines(content) {
		row := splitPlain(line, fortuneoDelimiter)
		if len(row) < fortuneoMinFields {
			continue
		}

		label := strings.TrimSpace(row[fortuneoColLabel])
		txs = keep(txs, entity.Transaction{
			Date:      strings.TrimSpace(row[fortuneoColDate]),
			Payee:     label,
			Amount:    fortuneoAmount(row[fortuneoColDebit], row[fortuneoColCredit]),
			Reference: label,
		})
	}
	return txs
}

// fortuneoAmount returns the credit when it parses to a nonzero value, otherwise
// -|debit|. An empty debit counts as 0, so a row with neither yields -0.
func fortuneoAmount(debitStr, creditStr string) float64 {
	if credit, ok := parseAmount(creditStr, true); ok && credit != 0 {
		return credit
	}

	debit := 0.0
	if strings.TrimSpace(debitStr) != "" {
		v, ok := parseAmount(debitStr, true)
		if !ok {
			return math.NaN()
		}
		debit = v
	}
	return -math.Abs(debit)
}
