package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var noHTTP bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline loop and the monitoring server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Orchestrator == nil || app.Config == nil {
				return fmt.Errorf("run requires a fully wired pipeline")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 2)
			go func() {
				errCh <- app.Orchestrator.Run(ctx, app.Config.Interval())
			}()
			if !noHTTP && app.Server != nil {
				go func() {
					errCh <- app.Server.ListenAndServe(ctx, app.Config.Server.Addr)
				}()
			}

			err := <-errCh
			stop()
			if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "Run the pipeline loop without the monitoring server")

	return cmd
}
