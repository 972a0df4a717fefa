// Package service internal/application/service/conversion_service.go
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/infrastructure/logger"
)

// PreviewLimit is the number of records shown in a conversion preview
const PreviewLimit = 10

// ConversionResult is the outcome of converting one file with one adapter
type ConversionResult struct {
	RunID                string                        `json:"run_id"`
	BankID               bank.ID                       `json:"bank_id"`
	BankName             string                        `json:"bank_name"`
	Transactions         []entity.Transaction          `json:"transactions"`
	Converted            []entity.ConvertedTransaction `json:"converted"`
	TotalSourceAmount    float64                       `json:"total_source_amount"`
	TotalConvertedAmount float64                       `json:"total_converted_amount"`
}

// Preview returns at most PreviewLimit converted records
func (r *ConversionResult) Preview() []entity.ConvertedTransaction {
	if len(r.Converted) <= PreviewLimit {
		return r.Converted
	}
	return r.Converted[:PreviewLimit]
}

// ConversionService drives parsing, rate resolution and output serialization
type ConversionService struct {
	registry *bank.Registry
	resolver *ExchangeRateResolver
	logger   logger.Logger
}

// NewConversionService creates a new conversion service
func NewConversionService(registry *bank.Registry, resolver *ExchangeRateResolver, log logger.Logger) *ConversionService {
	if registry == nil {
		registry = bank.DefaultRegistry()
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ConversionService{
		registry: registry,
		resolver: resolver,
		logger:   log,
	}
}

// Banks returns the supported adapters' ids and display names
func (s *ConversionService) Banks() []bank.Info {
	return s.registry.List()
}

// Convert parses content with the selected adapter and converts every transaction.
// It fails with bank.ErrUnknownBank, bank.ErrFormatMismatch, bank.ErrEmptyResult or
// bank.ErrInvalidDate; rate lookups never fail.
func (s *ConversionService) Convert(ctx context.Context, content, bankID string) (*ConversionResult, error) {
	runID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"bank":   bankID,
	})

	adapter, err := s.registry.Get(bankID)
	if err != nil {
		return nil, err
	}

	txs, err := bank.Parse(adapter, content)
	if err != nil {
		log.Warn("Header validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to parse %s file: %w", adapter.Name(), err)
	}

	if len(txs) == 0 {
		log.Warn("No transactions found", nil)
		return nil, bank.ErrEmptyResult
	}

	log.Info("Parsed transactions", map[string]interface{}{
		"count": len(txs),
	})

	converted, err := s.convertAll(ctx, adapter, txs)
	if err != nil {
		return nil, err
	}

	totalSource, totalConverted := decimal.Zero, decimal.Zero
	for _, c := range converted {
		totalSource = addAmount(totalSource, c.Amount)
		totalConverted = addAmount(totalConverted, c.ConvertedAmount)
	}

	result := &ConversionResult{
		RunID:                runID,
		BankID:               adapter.ID(),
		BankName:             adapter.Name(),
		Transactions:         txs,
		Converted:            converted,
		TotalSourceAmount:    totalSource.InexactFloat64(),
		TotalConvertedAmount: totalConverted.InexactFloat64(),
	}

	log.Info("Conversion completed", map[string]interface{}{
		"count":                  len(converted),
		"total_source_amount":    totalSource.StringFixed(2),
		"total_converted_amount": totalConverted.StringFixed(2),
	})

	return result, nil
}

// BuildOutputFile converts txs, which must come from the bankID adapter, and
// serializes them in the Simplifi import format
func (s *ConversionService) BuildOutputFile(ctx context.Context, txs []entity.Transaction, bankID string) (string, error) {
	adapter, err := s.registry.Get(bankID)
	if err != nil {
		return "", err
	}

	converted, err := s.convertAll(ctx, adapter, txs)
	if err != nil {
		return "", err
	}

	return WriteOutputFile(converted), nil
}

// convertAll resolves one rate per transaction, sequentially and in input order
func (s *ConversionService) convertAll(ctx context.Context, adapter bank.Adapter, txs []entity.Transaction) ([]entity.ConvertedTransaction, error) {
	converted := make([]entity.ConvertedTransaction, 0, len(txs))

	for i, tx := range txs {
		date, err := bank.ToCanonicalDate(tx.Date, adapter.DateFormat())
		if err != nil {
			return nil, fmt.Errorf("transaction %d (%s): %w", i+1, tx.Payee, err)
		}

		rate := s.resolver.Resolve(ctx, date)

		converted = append(converted, entity.ConvertedTransaction{
			Transaction:     tx,
			CalendarDate:    date,
			OutputDate:      bank.ToOutputDateString(date),
			ExchangeRate:    rate.Rate,
			RateSource:      rate.Source,
			ConvertedAmount: tx.Amount * rate.Rate,
		})
	}

	return converted, nil
}

func addAmount(total decimal.Decimal, v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return total
	}
	return total.Add(decimal.NewFromFloat(v))
}
