package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/damon-houk/simplifi-csv-converter/internal/application/service"
)

func newPreviewCommand(opts *rootOptions) *cobra.Command {
	var bankID string

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the first converted transactions and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readStatement(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Service.Convert(cmd.Context(), content, bankID)
			if err != nil {
				return err
			}

			printPreview(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&bankID, "bank", "", "bank export format (see banks)")
	_ = cmd.MarkFlagRequired("bank")

	return cmd
}

func printPreview(out io.Writer, result *service.ConversionResult) {
	fmt.Fprintf(out, "%s: %d transactions\n\n", result.BankName, len(result.Converted))
	fmt.Fprintf(out, "%-10s  %-30s  %10s  %10s  %8s  %s\n", "DATE", "PAYEE", "AMOUNT", "USD", "RATE", "SOURCE")

	for _, rec := range result.Preview() {
		fmt.Fprintf(out, "%-10s  %-30s  %10s  %10s  %8.4f  %s\n",
			rec.OutputDate,
			truncate(rec.Payee, 30),
			service.FormatAmount(rec.Amount),
			service.FormatAmount(rec.ConvertedAmount),
			rec.ExchangeRate,
			rec.RateSource,
		)
	}

	if len(result.Converted) > service.PreviewLimit {
		fmt.Fprintf(out, "... %d more\n", len(result.Converted)-service.PreviewLimit)
	}

	fmt.Fprintf(out, "\nTotal: %s EUR / %s USD\n",
		service.FormatAmount(result.TotalSourceAmount),
		service.FormatAmount(result.TotalConvertedAmount),
	)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
