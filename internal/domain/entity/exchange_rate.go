package entity

import (
	"time"
)

// RateSource records which resolution tier produced a rate
type RateSource string

const (
	// RateSourceStore is a rate read back from the persistent rate store
	RateSourceStore RateSource = "store"
	// RateSourceHistorical is the provider's rate for the exact date
	RateSourceHistorical RateSource = "historical"
	// RateSourceLatest is the provider's current rate used in place of a historical one
	RateSourceLatest RateSource = "latest"
	// RateSourceFallback is the hardcoded last-resort rate
	RateSourceFallback RateSource = "fallback"
)

// RateKeyFormat is the layout of the date key used to index cached rates
const RateKeyFormat = "2006-01-02"

// ExchangeRate represents a Base->Currency exchange rate at a specific date
type ExchangeRate struct {
	Base     string     `json:"base"`
	Currency string     `json:"currency"`
	Date     time.Time  `json:"date"`
	Rate     float64    `json:"rate"`
	Source   RateSource `json:"source"`
}

// RateKey returns the YYYY-MM-DD key for a calendar date
func RateKey(date time.Time) string {
	return date.Format(RateKeyFormat)
}
