package bank

import (
	"math"
	"strconv"
	"strings"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// ID identifies a supported bank export format
type ID string

const (
	N26      ID = "n26"
	Wise     ID = "wise"
	Fortuneo ID = "fortuneo"
)

// Adapter parses one bank's CSV export into normalized transactions
type Adapter interface {
	// ID returns the adapter identifier used by callers to select it
	ID() ID

	// Name returns the bank's display name
	Name() string

	// DateFormat returns the layout of the bank's transaction dates
	DateFormat() DateFormat

	// ValidateHeader checks the header line for the bank's required column markers
	ValidateHeader(header string) error

	// ParseRows parses every data line after the header, dropping malformed rows
	ParseRows(content string) []entity.Transaction
}

// Parse validates the header of content against adapter and parses its rows
func Parse(adapter Adapter, content string) ([]entity.Transaction, error) {
	header, _, _ := strings.Cut(content, "\n")
	if err := adapter.ValidateHeader(header); err != nil {
		return nil, err
	}
	return adapter.ParseRows(content), nil
}

// dataLines returns the trimmed, non-empty lines following the header
func dataLines(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) <= 1 {
		return nil
	}

	var out []string
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// requireMarkers fails with a FormatMismatchError unless header contains every marker
func requireMarkers(header, bankName string, markers ...string) error {
	for _, m := range markers {
		if !strings.Contains(header, m) {
			return &FormatMismatchError{BankName: bankName}
		}
	}
	return nil
}

// parseAmount parses a decimal amount. decimalComma switches the decimal separator to ','.
func parseAmount(s string, decimalComma bool) (float64, bool) {
	s = strings.TrimSpace(s)
	if decimalComma {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// keep appends tx to txs when it passes validation
func keep(txs []entity.Transaction, tx entity.Transaction) []entity.Transaction {
	if err := tx.Validate(); err != nil {
		return txs
	}
	return append(txs, tx)
}
