package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review tasks waiting on a decision",
	}

	cmd.AddCommand(
		newReviewPendingCmd(app),
		newReviewApproveCmd(app),
		newReviewRejectCmd(app),
	)

	return cmd
}

func newReviewPendingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List tasks awaiting review",
		RunE: func(cmd *cobra.Command, args []string) error {
			pending, err := app.Projects.PendingReviews(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPendingReviews(pending))
			return nil
		},
	}
}

func newReviewApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <project-id> <task-id>",
		Short: "Approve a task under review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.ApproveTask(ctx, projectID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approved task %s\n", args[1])
			return nil
		},
	}
}

func newReviewRejectCmd(app *App) *cobra.Command {
	var feedback string

	cmd := &cobra.Command{
		Use:   "reject <project-id> <task-id>",
		Short: "Send a task back for revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.RejectTask(ctx, projectID, args[1], feedback); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent task %s back for revision\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&feedback, "feedback", "", "What needs to change")
	_ = cmd.MarkFlagRequired("feedback")

	return cmd
}
