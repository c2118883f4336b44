package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline totals and conversion rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Stats.Snapshot(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPipelineStats(stats))
			return nil
		},
	}
}
