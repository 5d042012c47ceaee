package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newCapacityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Manage concurrent crew limits per trade",
	}
	cmd.AddCommand(
		newCapacityListCmd(app),
		newCapacitySetCmd(app),
	)
	return cmd
}

func newCapacityListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trade capacity rows that apply to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Capacity.List(context.Background(), contract.CapacityListRequest{
				CompanyID: app.CompanyID,
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}
			return render(cmd, contract.NewCapacityViews(rows), func() string {
				return formatter.FormatCapacity(rows)
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newCapacitySetCmd(app *App) *cobra.Command {
	var projectID, trade, scope string
	var maxCrews int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set how many crews of a trade may work at once",
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := app.Capacity.Upsert(context.Background(), contract.CapacityUpsertRequest{
				CompanyID:     app.CompanyID,
				ProjectID:     projectID,
				Trade:         trade,
				MaxConcurrent: maxCrews,
				Scope:         scope,
			})
			if err != nil {
				return err
			}
			return render(cmd, contract.NewCapacityViews([]domain.TradeCapacity{*saved})[0], func() string {
				return fmt.Sprintf("Set %s capacity to %d (%s scope)\n", saved.Trade, saved.MaxConcurrent, saved.Scope())
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&trade, "trade", "", "Trade name, e.g. Drywall")
	cmd.Flags().IntVar(&maxCrews, "max", 0, "Maximum concurrent crews")
	cmd.Flags().StringVar(&scope, "scope", "project", "Apply to the project or the whole company (project|company)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("trade")
	_ = cmd.MarkFlagRequired("max")
	return cmd
}
