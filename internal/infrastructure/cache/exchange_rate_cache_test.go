package cache

import (
	"testing"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRateCache(t *testing.T) {
	cache := NewExchangeRateCache()

	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, cache.Get(date))

	rate := &entity.ExchangeRate{
		Base:     "EUR",
		Currency: "USD",
		Date:     date,
		Rate:     1.09,
		Source:   entity.RateSourceHistorical,
	}

	cache.Put(rate, date)

	retrieved := cache.Get(date)
	assert.NotNil(t, retrieved)
	assert.Equal(t, rate.Rate, retrieved.Rate)
	assert.Equal(t, entity.RateSourceHistorical, retrieved.Source)

	// Same calendar day, different clock time, shares the key
	assert.NotNil(t, cache.Get(date.Add(15*time.Hour)))

	assert.Nil(t, cache.Get(date.AddDate(0, 0, 1)))
}

func TestExchangeRateCache_StoresUnderRequestedDate(t *testing.T) {
	cache := NewExchangeRateCache()

	requested := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	latest := &entity.ExchangeRate{
		Base:     "EUR",
		Currency: "USD",
		Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Rate:     1.08,
		Source:   entity.RateSourceLatest,
	}

	cache.Put(latest, requested)

	assert.Equal(t, latest, cache.Get(requested))
	assert.Nil(t, cache.Get(latest.Date))
}
