package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/repository"
)

// BadgerExchangeRateRepository implements the exchange rate repository interface using BadgerDB
type BadgerExchangeRateRepository struct {
	db *badger.DB
}

// NewBadgerExchangeRateRepository creates a new BadgerDB exchange rate repository
func NewBadgerExchangeRateRepository(db *badger.DB) *BadgerExchangeRateRepository {
	return &BadgerExchangeRateRepository{db: db}
}

// OpenBadger opens (or creates) a badger database at path with badger's own logging disabled
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate store: %w", err)
	}
	return db, nil
}

func rateKey(base, currency string, date time.Time) []byte {
	return []byte("rate:" + base + ":" + currency + ":" + entity.RateKey(date))
}

// FindRate retrieves the rate stored for base, currency and date
func (r *BadgerExchangeRateRepository) FindRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error) {
	var rate entity.ExchangeRate

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rateKey(base, currency, date))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rate)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s/%s on %s", repository.ErrRateNotFound, base, currency, entity.RateKey(date))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve exchange rate: %w", err)
	}

	return &rate, nil
}

// StoreRate saves a rate under its own date
func (r *BadgerExchangeRateRepository) StoreRate(ctx context.Context, rate *entity.ExchangeRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange rate: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(rateKey(rate.Base, rate.Currency, rate.Date), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store exchange rate: %w", err)
	}

	return nil
}
