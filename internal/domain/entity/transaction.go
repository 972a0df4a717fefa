package entity

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrMissingPayee is returned when a transaction has no counterparty name
	ErrMissingPayee = errors.New("payee must not be empty")
	// ErrInvalidAmount is returned when a transaction amount is NaN or infinite
	ErrInvalidAmount = errors.New("amount must be a finite number")
)

// Transaction is a bank row after adapter-level extraction. Date is kept in the
// bank's native format; Amount is in the bank's native currency (EUR), debits negative.
type Transaction struct {
	Date      string  `json:"date"`
	Payee     string  `json:"payee"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference"`
}

// Validate ensures the transaction meets all requirements
func (t *Transaction) Validate() error {
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}

	if t.Payee == "" {
		return ErrMissingPayee
	}

	return nil
}

// ConvertedTransaction is a Transaction enriched with its normalized date and converted amount.
// It only lives for the duration of one conversion run.
type ConvertedTransaction struct {
	Transaction
	CalendarDate    time.Time  `json:"calendar_date"`
	OutputDate      string     `json:"output_date"`
	ExchangeRate    float64    `json:"exchange_rate"`
	RateSource      RateSource `json:"rate_source"`
	ConvertedAmount float64    `json:"converted_amount"`
}
