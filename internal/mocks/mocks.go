// internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockRateProvider mocks the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchHistoricalRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, base, currency, date)
	if fn, ok := args.Get(0).(func(context.Context, string, string, time.Time) *entity.ExchangeRate); ok {
		return fn(ctx, base, currency, date), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

func (m *MockRateProvider) FetchLatestRate(ctx context.Context, base, currency string) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, base, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

// MockExchangeRateRepository mocks the ExchangeRateRepository interface
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, base, currency string, date time.Time) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, base, currency, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) StoreRate(ctx context.Context, rate *entity.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	m.Called(key, value)
	return m
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	m.Called(fields)
	return m
}
