package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dealflow/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect delivery projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectReportCmd(app),
		newProjectTasksCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report <project-id>",
		Short: "Show a full delivery report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			report, err := app.Projects.Report(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectReport(report))
			return nil
		},
	}
}

func newProjectTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := app.resolveProjectID(ctx, args[0])
			if err != nil {
				return err
			}
			project, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(project.Tasks))
			return nil
		},
	}
}
