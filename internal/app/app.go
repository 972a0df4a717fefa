// Package app assembles the conversion service from configuration
package app

import (
	"net/http"

	"github.com/dgraph-io/badger/v3"

	"github.com/damon-houk/simplifi-csv-converter/internal/application/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
	domainservice "github.com/damon-houk/simplifi-csv-converter/internal/domain/service"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/api"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/cache"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/config"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/db"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

// App holds the wired conversion service and the resources it owns
type App struct {
	Service  *service.ConversionService
	Resolver *service.ExchangeRateResolver
	badgerDB *badger.DB
}

// New wires the conversion service. A nil provider builds the HTTP rate client from cfg.
func New(cfg *config.Config, log logger.Logger, provider domainservice.RateProvider) (*App, error) {
	if provider == nil {
		provider = api.NewExchangeRateAPIClient(
			&http.Client{Timeout: cfg.RateAPITimeout},
			log.WithField("component", "rate_api"),
			api.WithBaseURL(cfg.RateAPIBaseURL),
			api.WithRateLimit(cfg.RateAPIRequestsPerSecond),
		)
	}

	opts := []service.ResolverOption{
		service.WithCurrencies(cfg.BaseCurrency, cfg.QuoteCurrency),
		service.WithFallbackRate(cfg.FallbackRate),
	}

	a := &App{}
	if cfg.RateStorePath != "" {
		badgerDB, err := db.OpenBadger(cfg.RateStorePath)
		if err != nil {
			return nil, err
		}
		a.badgerDB = badgerDB
		opts = append(opts, service.WithRateStore(db.NewBadgerExchangeRateRepository(badgerDB)))
	}

	a.Resolver = service.NewExchangeRateResolver(provider, cache.NewExchangeRateCache(), log.WithField("component", "rate_resolver"), opts...)
	a.Service = service.NewConversionService(bank.DefaultRegistry(), a.Resolver, log)

	log.Info("Conversion service ready", map[string]interface{}{
		"strategies": a.Resolver.Strategies(),
		"rate_store": cfg.RateStorePath,
	})

	return a, nil
}

// Close releases the rate store, if one was opened
func (a *App) Close() error {
	if a.badgerDB == nil {
		return nil
	}
	return a.badgerDB.Close()
}
