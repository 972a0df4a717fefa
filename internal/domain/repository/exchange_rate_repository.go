// Package repository internal/domain/repository/exchange_rate_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// ErrRateNotFound is returned when no stored rate exists for a date
var ErrRateNotFound = errors.New("exchange rate not found")

// ExchangeRateRepository defines the interface for persisted exchange rates
type ExchangeRateRepository interface {
	// FindRate finds a stored base->currency rate for a specific date
	FindRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error)

	// StoreRate saves an exchange rate under its date
	StoreRate(ctx context.Context, rate *entity.ExchangeRate) error
}
