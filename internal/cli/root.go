package cli

import (
	"github.com/alexanderramin/crewplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and defaults CLI commands run against.
type App struct {
	Schedule service.ScheduleService
	Summary  service.SummaryService
	Capacity service.CapacityService
	Import   service.ImportService
	Export   service.ExportService

	// CompanyID scopes project lookups when set.
	CompanyID string
	// ActorID is recorded on commits made without --actor.
	ActorID string

	// IsInteractive reports whether progress can be drawn on stderr.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "crewplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "crewplan",
		Short:         "Day-level crew scheduling for restoration estimates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Print machine-readable JSON")
	root.PersistentFlags().StringVar(&app.CompanyID, "company", app.CompanyID, "Only address projects of this company")

	root.AddCommand(
		newImportCmd(app),
		newScheduleCmd(app),
		newCapacityCmd(app),
	)
	return root
}
