package service

import (
	"context"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// RateProvider defines the interface for an external exchange rate service
type RateProvider interface {
	// FetchHistoricalRate retrieves the base->currency rate published for an exact date
	FetchHistoricalRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error)

	// FetchLatestRate retrieves the current base->currency rate
	FetchLatestRate(ctx context.Context, base, currency string) (*entity.ExchangeRate, error)
}
