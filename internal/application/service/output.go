package service

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// OutputHeader is the header row of a Simplifi import file
const OutputHeader = `"Date","Payee","Amount","Tags"`

const outputSuffix = "-simplifi.csv"

// WriteOutputFile serializes records as quoted CSV rows under OutputHeader.
// Amount is the converted value with two decimals and Tags is always empty.
func WriteOutputFile(records []entity.ConvertedTransaction) string {
	var b strings.Builder
	b.WriteString(OutputHeader)

	for _, rec := range records {
		b.WriteString("\n")
		b.WriteString(`"` + rec.OutputDate + `",`)
		b.WriteString(`"` + escapeCSV(rec.Payee) + `",`)
		b.WriteString(`"` + FormatAmount(rec.ConvertedAmount) + `",`)
		b.WriteString(`""`)
	}

	return b.String()
}

// FormatAmount renders v with exactly two decimals, rounding the exact binary value
// (1.005 is stored just below the tie and gives 1.00)
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// OutputFileName derives the download name from the uploaded file name,
// e.g. statement.csv becomes statement-simplifi.csv
func OutputFileName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputSuffix
}

func escapeCSV(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
