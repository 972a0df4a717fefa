package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
	"github.com/damon-houk/simplifi-csv-converter/internal/domain/entity"
	"github.com/damon-houk/simplifi-csv-converter/internal/mocks"
)

const n26Export = `"Booking Date","Value Date","Partner Name","Partner Iban",Type,"Payment Reference","Account Name","Amount (EUR)","Original Amount","Original Currency","Exchange Rate"
"2024-03-07","2024-03-07","ACME Corp","DE00",Debit,"Invoice 42","Main","-12.50","","",""
"2024-03-08","2024-03-08","Jane ""JJ"" Doe","DE01",Credit,"Rent share","Main","20.00","","",""`

const fortuneoExport = "Date opération;Date valeur;libellé;Débit;Crédit;\n" +
	"05/01/2024;05/01/2024;CARTE 04/01 BOULANGERIE ;-4,20;;\n" +
	"31/01/2024;31/01/2024;VIR SALAIRE;;2500,00;"

func newTestConversionService(provider *mocks.MockRateProvider) *ConversionService {
	resolver := NewExchangeRateResolver(provider, nil, quietLogger())
	return NewConversionService(bank.DefaultRegistry(), resolver, quietLogger())
}

func offlineProvider() *mocks.MockRateProvider {
	provider := new(mocks.MockRateProvider)
	provider.On("FetchHistoricalRate", mock.Anything, "EUR", "USD", mock.Anything).Return(nil, errors.New("offline"))
	provider.On("FetchLatestRate", mock.Anything, "EUR", "USD").Return(nil, errors.New("offline"))
	return provider
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("N26 export with fallback rate", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())

		result, err := svc.Convert(ctx, n26Export, "n26")

		require.NoError(t, err)
		assert.NotEmpty(t, result.RunID)
		assert.Equal(t, bank.N26, result.BankID)
		assert.Equal(t, "N26", result.BankName)
		require.Len(t, result.Converted, 2)

		first := result.Converted[0]
		assert.Equal(t, "ACME Corp", first.Payee)
		assert.Equal(t, "3/7/2024", first.OutputDate)
		assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), first.CalendarDate)
		assert.Equal(t, 1.10, first.ExchangeRate)
		assert.Equal(t, entity.RateSourceFallback, first.RateSource)
		assert.InDelta(t, -13.75, first.ConvertedAmount, 1e-9)

		assert.InDelta(t, 7.5, result.TotalSourceAmount, 1e-9)
		assert.InDelta(t, 8.25, result.TotalConvertedAmount, 1e-9)

		output := WriteOutputFile(result.Converted)
		lines := strings.Split(output, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `"Date","Payee","Amount","Tags"`, lines[0])
		assert.Equal(t, `"3/7/2024","ACME Corp","-13.75",""`, lines[1])
		assert.Equal(t, `"3/8/2024","Jane ""JJ"" Doe","22.00",""`, lines[2])
	})

	t.Run("Historical rates per date", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		d1 := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
		d2 := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
		provider.On("FetchHistoricalRate", mock.Anything, "EUR", "USD", d1).
			Return(&entity.ExchangeRate{Base: "EUR", Currency: "USD", Date: d1, Rate: 1.08, Source: entity.RateSourceHistorical}, nil).Once()
		provider.On("FetchHistoricalRate", mock.Anything, "EUR", "USD", d2).
			Return(&entity.ExchangeRate{Base: "EUR", Currency: "USD", Date: d2, Rate: 1.09, Source: entity.RateSourceHistorical}, nil).Once()

		svc := newTestConversionService(provider)
		result, err := svc.Convert(ctx, n26Export, "N26")

		require.NoError(t, err)
		assert.InDelta(t, -13.5, result.Converted[0].ConvertedAmount, 1e-9)
		assert.InDelta(t, 21.8, result.Converted[1].ConvertedAmount, 1e-9)
		assert.Equal(t, entity.RateSourceHistorical, result.Converted[1].RateSource)
		provider.AssertExpectations(t)
	})

	t.Run("Fortuneo export", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())

		result, err := svc.Convert(ctx, fortuneoExport, "fortuneo")

		require.NoError(t, err)
		require.Len(t, result.Converted, 2)
		assert.Equal(t, "1/5/2024", result.Converted[0].OutputDate)
		assert.Equal(t, "CARTE 04/01 BOULANGERIE", result.Converted[0].Payee)
		assert.InDelta(t, -4.2, result.Converted[0].Amount, 1e-9)
		assert.Equal(t, "1/31/2024", result.Converted[1].OutputDate)
		assert.InDelta(t, 2750.0, result.Converted[1].ConvertedAmount, 1e-9)
	})

	t.Run("Wrong bank selected", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())

		result, err := svc.Convert(ctx, n26Export, "fortuneo")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, bank.ErrFormatMismatch)
		var mismatch *bank.FormatMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "Fortuneo", mismatch.BankName)
	})

	t.Run("Header only", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())
		header, _, _ := strings.Cut(n26Export, "\n")

		result, err := svc.Convert(ctx, header+"\n", "n26")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, bank.ErrEmptyResult)
		assert.NotErrorIs(t, err, bank.ErrFormatMismatch)
	})

	t.Run("Every row malformed", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())
		header, _, _ := strings.Cut(n26Export, "\n")

		_, err := svc.Convert(ctx, header+"\n\"2024-03-07\",\"x\"\n", "n26")

		assert.ErrorIs(t, err, bank.ErrEmptyResult)
	})

	t.Run("Unknown bank", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())

		_, err := svc.Convert(ctx, n26Export, "revolut")

		assert.ErrorIs(t, err, bank.ErrUnknownBank)
	})

	t.Run("Invalid date aborts the run", func(t *testing.T) {
		svc := newTestConversionService(offlineProvider())
		header, _, _ := strings.Cut(n26Export, "\n")
		content := header + "\n" + `"yesterday","","ACME Corp","",Debit,"","Main","-1.00","","",""`

		_, err := svc.Convert(ctx, content, "n26")

		assert.ErrorIs(t, err, bank.ErrInvalidDate)
	})
}

func TestConversionResult_Preview(t *testing.T) {
	result := &ConversionResult{Converted: make([]entity.ConvertedTransaction, PreviewLimit+5)}
	assert.Len(t, result.Preview(), PreviewLimit)

	small := &ConversionResult{Converted: make([]entity.ConvertedTransaction, 3)}
	assert.Len(t, small.Preview(), 3)
}

func TestBuildOutputFile(t *testing.T) {
	ctx := context.Background()
	svc := newTestConversionService(offlineProvider())

	txs := []entity.Transaction{{Date: "07/03/2024", Payee: "Shop", Amount: 10}}

	output, err := svc.BuildOutputFile(ctx, txs, "fortuneo")
	require.NoError(t, err)
	assert.Equal(t, "\"Date\",\"Payee\",\"Amount\",\"Tags\"\n\"3/7/2024\",\"Shop\",\"11.00\",\"\"", output)

	_, err = svc.BuildOutputFile(ctx, txs, "unknown")
	assert.ErrorIs(t, err, bank.ErrUnknownBank)
}

func TestBanks(t *testing.T) {
	svc := newTestConversionService(offlineProvider())

	assert.Equal(t, []bank.Info{
		{ID: bank.N26, Name: "N26"},
		{ID: bank.Wise, Name: "Wise"},
		{ID: bank.Fortuneo, Name: "Fortuneo"},
	}, svc.Banks())
}
