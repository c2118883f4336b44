package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealflow/internal/cli/formatter"
	"github.com/alexanderramin/dealflow/internal/domain"
	"github.com/spf13/cobra"
)

func newDealCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deal",
		Short: "Inspect deals and record prospect replies",
	}

	cmd.AddCommand(
		newDealListCmd(app),
		newDealShowCmd(app),
		newDealReplyCmd(app),
	)

	return cmd
}

func newDealListCmd(app *App) *cobra.Command {
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				deals []*domain.Deal
				err   error
			)
			if openOnly {
				deals, err = app.Deals.ListOpen(ctx)
			} else {
				deals, err = app.Deals.List(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDealList(deals))
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "Only deals not yet closed")

	return cmd
}

func newDealShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deal-id>",
		Short: "Show a deal with its proposal and communication log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := app.resolveDealID(ctx, args[0])
			if err != nil {
				return err
			}
			deal, err := app.Deals.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeal(deal))
			return nil
		},
	}
}

func newDealReplyCmd(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "reply <deal-id>",
		Short: "Record an inbound message from the prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := app.resolveDealID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Deals.RecordCommunication(ctx, id, domain.DirectionInbound, message); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Recorded inbound message; the next pipeline cycle will pick it up.")
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Message content")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
