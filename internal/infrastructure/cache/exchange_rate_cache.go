package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
)

// ExchangeRateCache is an in-memory map from date key (YYYY-MM-DD) to a resolved rate.
// Entries never expire: a past day's rate does not change once observed.
type ExchangeRateCache struct {
	store *gocache.Cache
}

// NewExchangeRateCache creates a new, empty exchange rate cache
func NewExchangeRateCache() *ExchangeRateCache {
	return &ExchangeRateCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves the rate cached for date, or nil
func (c *ExchangeRateCache) Get(date time.Time) *entity.ExchangeRate {
	v, found := c.store.Get(entity.RateKey(date))
	if !found {
		return nil
	}
	return v.(*entity.ExchangeRate)
}

// Put stores rate under forDate's key, which may differ from the rate's own date
func (c *ExchangeRateCache) Put(rate *entity.ExchangeRate, forDate time.Time) {
	c.store.Set(entity.RateKey(forDate), rate, gocache.NoExpiration)
}
