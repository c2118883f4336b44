package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealflow/internal/cli/formatter"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/spf13/cobra"
)

func newLeadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Inspect and qualify leads",
	}

	cmd.AddCommand(
		newLeadListCmd(app),
		newLeadQualifyCmd(app),
	)

	return cmd
}

func newLeadListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			leads, err := app.Leads.List(context.Background())
			if err != nil {
				return err
			}
			if status != "" {
				filtered := leads[:0]
				for _, l := range leads {
					if l.Status == domain.LeadStatus(status) {
						filtered = append(filtered, l)
					}
				}
				leads = filtered
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLeadList(leads))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (new|enriched|qualified|transferred)")

	return cmd
}

func newLeadQualifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "qualify <lead-id>",
		Short: "Score a lead and identify its service needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := app.resolveLeadID(ctx, args[0])
			if err != nil {
				return err
			}
			lead, err := app.Leads.Qualify(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Qualified %s with score %d\n", lead.BusinessName, *lead.Score)
			if len(lead.IdentifiedNeeds) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Identified needs: %v\n", lead.IdentifiedNeeds)
			}
			return nil
		},
	}
}
