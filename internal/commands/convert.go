package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/damon-houk/simplifi-csv-converter/internal/application/service"
)

func newConvertCommand(opts *rootOptions) *cobra.Command {
	var bankID string
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Write the Simplifi import file for a bank export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			content, err := readStatement(input)
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

			data, err := a.Service.BuildOutputFile(cmd.Context(), result.Transactions, bankID)
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(filepath.Dir(input), service.OutputFileName(input))
			}
			if err := os.WriteFile(output, []byte(data), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(result.Transactions), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&bankID, "bank", "", "bank export format (see banks)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <file>-simplifi.csv next to the input)")

	return cmd
}
