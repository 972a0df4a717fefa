package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damon-houk/simplifi-csv-converter/internal/domain/bank"
)

func newBanksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported bank export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range bank.DefaultRegistry().List() {
				fmt.Fprintf(out, "%-10s %s\n", info.ID, info.Name)
			}
			return nil
		},
	}
}
