package cli

import (
	"github.com/alexanderramin/dealflow/internal/config"
	"github.com/alexanderramin/dealflow/internal/pipeline"
	"github.com/alexanderramin/dealflow/internal/server"
	"github.com/alexanderramin/dealflow/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Leads    service.LeadService
	Deals    service.DealService
	Projects service.ProjectService
	Stats    service.StatsService

	// Wired only for the run command; list/show commands do not need them.
	Orchestrator *pipeline.Orchestrator
	Server       *server.Server
	Config       *config.Config
}

// NewRootCmd creates the top-level "dealflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dealflow",
		Short:         "Business acquisition pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(app),
		newLeadCmd(app),
		newDealCmd(app),
		newProjectCmd(app),
		newReviewCmd(app),
		newStatusCmd(app),
	)

	return root
}
