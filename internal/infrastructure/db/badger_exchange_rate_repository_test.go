package db

import (
	"context"
	"testing"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerExchangeRateRepository(t *testing.T) {
	badgerDB, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer badgerDB.Close()

	repo := NewBadgerExchangeRateRepository(badgerDB)
	ctx := context.Background()
	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("Missing rate", func(t *testing.T) {
		rate, err := repo.FindRate(ctx, "EUR", "USD", date)
		assert.Nil(t, rate)
		assert.ErrorIs(t, err, repository.ErrRateNotFound)
	})

	t.Run("Store and find", func(t *testing.T) {
		stored := &entity.ExchangeRate{
			Base:     "EUR",
			Currency: "USD",
			Date:     date,
			Rate:     1.0945,
			Source:   entity.RateSourceHistorical,
		}
		require.NoError(t, repo.StoreRate(ctx, stored))

		found, err := repo.FindRate(ctx, "EUR", "USD", date)
		require.NoError(t, err)
		assert.Equal(t, 1.0945, found.Rate)
		assert.Equal(t, entity.RateSourceHistorical, found.Source)
		assert.True(t, date.Equal(found.Date))
	})

	t.Run("Currency pair is part of the key", func(t *testing.T) {
		_, err := repo.FindRate(ctx, "EUR", "GBP", date)
		assert.ErrorIs(t, err, repository.ErrRateNotFound)
	})
}
