package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
	"github.com/damon-houk/simplifi-csv-converter/internal/mocks"
)

const wiseHeader = `"TransferWise ID",Date,Amount,Currency,Description,"Payment Reference","Running Balance","Exchange From","Exchange To","Exchange Rate","Payer Name","Payee Name","Payee Account Number",Merchant,"Card Last Four Digits","Card Holder Full Name",Attachment,Note,"Total fees","Exchange To Amount"`

func wiseLine(date, amount, currency, payee string) string {
	return "T-1," + date + "," + amount + "," + currency + ",Card payment,,,,,,,\"" + payee + "\",,,,,,,,"
}

func offlineProvider() *mocks.MockRateProvider {
	provider := new(mocks.MockRateProvider)
	provider.On("FetchHistoricalRate", mock.Anything, "EUR", "USD", mock.Anything).Return(nil, errors.New("offline"))
	provider.On("FetchLatestRate", mock.Anything, "EUR", "USD").Return(nil, errors.New("offline"))
	return provider
}

// runCommand executes the CLI in-process and returns stdout
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RATE_STORE_PATH", "")
	t.Setenv("RATE_FALLBACK", "")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(offlineProvider())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func writeStatement(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func TestBanks(t *testing.T) {
	out, err := runCommand(t, "banks")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "n26"))
	assert.Contains(t, lines[1], "Wise")
	assert.Contains(t, lines[2], "Fortuneo")
}

func TestPreview(t *testing.T) {
	path := writeStatement(t, "wise.csv",
		wiseHeader,
		wiseLine("15-02-2024", "-10.00", "EUR", "Cafe"),
		wiseLine("16-02-2024", "-99.00", "GBP", "London"),
	)

	out, err := runCommand(t, "preview", "--bank", "wise", "--fallback-rate", "1.5", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Wise: 1 transactions")
	assert.Contains(t, out, "2/15/2024")
	assert.Contains(t, out, "Cafe")
	assert.Contains(t, out, "-15.00")
	assert.Contains(t, out, "fallback")
	assert.NotContains(t, out, "London")
	assert.Contains(t, out, "Total: -10.00 EUR / -15.00 USD")
}

func TestPreview_Errors(t *testing.T) {
	path := writeStatement(t, "wise.csv", wiseHeader)

	_, err := runCommand(t, "preview", "--bank", "wise", path)
	assert.ErrorIs(t, err, bank.ErrEmptyResult)

	_, err = runCommand(t, "preview", "--bank", "n26", path)
	assert.ErrorIs(t, err, bank.ErrFormatMismatch)

	_, err = runCommand(t, "preview", path)
	assert.Error(t, err, "--bank is required")

	_, err = runCommand(t, "preview", "--bank", "wise", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	t.Run("Default output next to input", func(t *testing.T) {
		path := writeStatement(t, "feb.csv", wiseHeader, wiseLine("15-02-2024", "-10.00", "EUR", "Cafe"))

		out, err := runCommand(t, "convert", "--bank", "wise", path)
		require.NoError(t, err)

		outputPath := filepath.Join(filepath.Dir(path), "feb-simplifi.csv")
		assert.Contains(t, out, "Wrote 1 transactions to "+outputPath)

		data, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, "\"Date\",\"Payee\",\"Amount\",\"Tags\"\n\"2/15/2024\",\"Cafe\",\"-11.00\",\"\"", string(data))
	})

	t.Run("Explicit output path", func(t *testing.T) {
		path := writeStatement(t, "feb.csv", wiseHeader, wiseLine("15-02-2024", "20.00", "EUR", "Refund"))
		outputPath := filepath.Join(t.TempDir(), "out.csv")

		_, err := runCommand(t, "convert", "--bank", "wise", "-o", outputPath, path)
		require.NoError(t, err)

		data, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"2/15/2024","Refund","22.00",""`)
	})
}
