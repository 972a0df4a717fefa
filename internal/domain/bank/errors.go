package bank

import (
	"errors"
	"fmt"
)

var (
	// ErrFormatMismatch is returned when a header does not belong to the selected bank
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrEmptyResult is returned when a file parses but yields no transactions
	ErrEmptyResult = errors.New("no transactions found in the file")
	// ErrUnknownBank is returned for an adapter id missing from the registry
	ErrUnknownBank = errors.New("unknown bank")
	// ErrInvalidDate is returned when a transaction date cannot be normalized
	ErrInvalidDate = errors.New("invalid transaction date")
)

// FormatMismatchError carries the display name of the bank the header was checked against
type FormatMismatchError struct {
	BankName string
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("this doesn't appear to be a %s CSV file, please check the file format", e.BankName)
}

// Unwrap lets errors.Is match ErrFormatMismatch
func (e *FormatMismatchError) Unwrap() error {
	return ErrFormatMismatch
}
