package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/repository"
	domainservice "github.com/damon-houk/simplifi-csv-converter/internal/domain/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/cache"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

const (
	// DefaultBaseCurrency is the currency of every supported bank export
	DefaultBaseCurrency = "EUR"
	// DefaultQuoteCurrency is the currency amounts are converted into
	DefaultQuoteCurrency = "USD"
	// DefaultFallbackRate is the last-resort EUR->USD rate
	DefaultFallbackRate = 1.10
)

// RateStrategy is one tier of rate resolution. Strategies are tried in order until one succeeds.
type RateStrategy interface {
	Name() string
	Resolve(ctx context.Context, date time.Time) (*entity.ExchangeRate, error)
}

type storeStrategy struct {
	repo           repository.ExchangeRateRepository
	base, currency string
}

func (s *storeStrategy) Name() string { return string(entity.RateSourceStore) }

func (s *storeStrategy) Resolve(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	rate, err := s.repo.FindRate(ctx, s.base, s.currency, date)
	if err != nil {
		return nil, err
	}
	rate.Source = entity.RateSourceStore
	return rate, nil
}

type historicalStrategy struct {
	provider       domainservice.RateProvider
	base, currency string
}

func (s *historicalStrategy) Name() string { return string(entity.RateSourceHistorical) }

func (s *historicalStrategy) Resolve(ctx context.Context, date time.Time) (*entity.ExchangeRate, error) {
	return s.provider.FetchHistoricalRate(ctx, s.base, s.currency, date)
}

// latestStrategy answers a historical request with today's rate
type latestStrategy struct {
	provider       domainservice.RateProvider
	base, currency string
}

func (s *latestStrategy) Name() string { return string(entity.RateSourceLatest) }

func (s *latestStrategy) Resolve(ctx context.Context, _ time.Time) (*entity.ExchangeRate, error) {
	return s.provider.FetchLatestRate(ctx, s.base, s.currency)
}

type fixedStrategy struct {
	base, currency string
	rate           float64
}

func (s *fixedStrategy) Name() string { return string(entity.RateSourceFallback) }

func (s *fixedStrategy) Resolve(_ context.Context, date time.Time) (*entity.ExchangeRate, error) {
	return &entity.ExchangeRate{
		Base:     s.base,
		Currency: s.currency,
		Date:     date,
		Rate:     s.rate,
		Source:   entity.RateSourceFallback,
	}, nil
}

// ExchangeRateResolver returns a rate for any calendar date. It checks its cache, then
// tries each strategy in order, caching the first success under the requested date.
// It never fails: the last strategy is a fixed rate.
type ExchangeRateResolver struct {
	base         string
	currency     string
	fallbackRate float64
	cache        *cache.ExchangeRateCache
	store        repository.ExchangeRateRepository
	strategies   []RateStrategy
	logger       logger.Logger
}

// ResolverOption configures an ExchangeRateResolver
type ResolverOption func(*ExchangeRateResolver)

// WithCurrencies sets the base and quote currencies. Empty values keep the defaults.
func WithCurrencies(base, currency string) ResolverOption {
	return func(r *ExchangeRateResolver) {
		if base != "" {
			r.base = base
		}
		if currency != "" {
			r.currency = currency
		}
	}
}

// WithFallbackRate sets the hardcoded last-resort rate
func WithFallbackRate(rate float64) ResolverOption {
	return func(r *ExchangeRateResolver) {
		if rate > 0 {
			r.fallbackRate = rate
		}
	}
}

// WithRateStore adds a persistent store consulted before the provider. Only
// historical rates are written back to it.
func WithRateStore(store repository.ExchangeRateRepository) ResolverOption {
	return func(r *ExchangeRateResolver) {
		r.store = store
	}
}

// NewExchangeRateResolver creates a resolver. A nil rateCache starts an empty one.
func NewExchangeRateResolver(provider domainservice.RateProvider, rateCache *cache.ExchangeRateCache, log logger.Logger, opts ...ResolverOption) *ExchangeRateResolver {
	if rateCache == nil {
		rateCache = cache.NewExchangeRateCache()
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	r := &ExchangeRateResolver{
		base:         DefaultBaseCurrency,
		currency:     DefaultQuoteCurrency,
		fallbackRate: DefaultFallbackRate,
		cache:        rateCache,
		logger:       log,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.store != nil {
		r.strategies = append(r.strategies, &storeStrategy{repo: r.store, base: r.base, currency: r.currency})
	}
	r.strategies = append(r.strategies,
		&historicalStrategy{provider: provider, base: r.base, currency: r.currency},
		&latestStrategy{provider: provider, base: r.base, currency: r.currency},
		&fixedStrategy{base: r.base, currency: r.currency, rate: r.fallbackRate},
	)

	return r
}

// Strategies returns the names of the resolution tiers in the order they are tried
func (r *ExchangeRateResolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Resolve returns the rate for date. Failures of individual tiers are logged as warnings.
// When ctx is cancelled the fallback rate is returned but not cached.
func (r *ExchangeRateResolver) Resolve(ctx context.Context, date time.Time) *entity.ExchangeRate {
	key := entity.RateKey(date)

	if cached := r.cache.Get(date); cached != nil {
		r.logger.Debug("Exchange rate cache hit", map[string]interface{}{
			"date": key,
			"rate": cached.Rate,
		})
		return cached
	}

	for _, strategy := range r.strategies {
		rate, err := strategy.Resolve(ctx, date)
		if err != nil {
			r.logFailure(strategy, key, err)
			continue
		}

		switch rate.Source {
		case entity.RateSourceLatest:
			r.logger.Warn(fmt.Sprintf("Using current %s/%s rate for historical date", r.base, r.currency), map[string]interface{}{
				"date": key,
				"rate": rate.Rate,
			})
		case entity.RateSourceFallback:
			if ctx.Err() != nil {
				// The network tiers failed because the caller gave up, not the provider
				r.logger.Debug("Rate lookup cancelled, fallback rate not cached", map[string]interface{}{
					"date":  key,
					"error": ctx.Err().Error(),
				})
				return rate
			}
			r.logger.Warn("Using hardcoded fallback rate", map[string]interface{}{
				"date": key,
				"rate": rate.Rate,
			})
		case entity.RateSourceHistorical:
			r.persist(ctx, rate, date)
		}

		r.cache.Put(rate, date)
		return rate
	}

	// Only reached if every strategy failed, which the fixed tier prevents
	rate := &entity.ExchangeRate{Base: r.base, Currency: r.currency, Date: date, Rate: r.fallbackRate, Source: entity.RateSourceFallback}
	r.cache.Put(rate, date)
	return rate
}

func (r *ExchangeRateResolver) logFailure(strategy RateStrategy, key string, err error) {
	fields := map[string]interface{}{
		"date":     key,
		"strategy": strategy.Name(),
		"error":    err.Error(),
	}

	if errors.Is(err, repository.ErrRateNotFound) {
		r.logger.Debug("Exchange rate not in store", fields)
		return
	}
	r.logger.Warn("Could not fetch exchange rate", fields)
}

// persist stores rate under the requested date, which the provider may have answered
// with an earlier publication day
func (r *ExchangeRateResolver) persist(ctx context.Context, rate *entity.ExchangeRate, date time.Time) {
	if r.store == nil {
		return
	}

	stored := *rate
	stored.Date = date
	if err := r.store.StoreRate(ctx, &stored); err != nil {
		r.logger.Warn("Failed to persist exchange rate", map[string]interface{}{
			"date":  entity.RateKey(date),
			"error": err.Error(),
		})
	}
}
