package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type importView struct {
	ProjectID     string `json:"projectId"`
	ProjectName   string `json:"projectName"`
	EstimateID    string `json:"estimateId"`
	LineCount     int    `json:"lineCount"`
	PriceListID   string `json:"priceListId,omitempty"`
	EntryCount    int    `json:"entryCount"`
	CapacityCount int    `json:"capacityCount"`
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project, estimate, price list and capacity from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}

			view := importView{
				ProjectID:     result.Project.ID,
				ProjectName:   result.Project.Name,
				EstimateID:    result.Estimate.ID,
				LineCount:     result.LineCount,
				EntryCount:    result.EntryCount,
				CapacityCount: result.CapacityCount,
			}
			if result.PriceList != nil {
				view.PriceListID = result.PriceList.ID
			}
			return render(cmd, view, func() string {
				s := fmt.Sprintf("Imported project %s [%s]: estimate %s with %d lines\n",
					view.ProjectName, view.ProjectID, view.EstimateID, view.LineCount)
				if result.PriceList != nil {
					s += fmt.Sprintf("Price list %s rev %d: %d entries\n",
						result.PriceList.Kind, result.PriceList.Revision, view.EntryCount)
				}
				if view.CapacityCount > 0 {
					s += fmt.Sprintf("Trade capacity: %d rows\n", view.CapacityCount)
				}
				return s
			})
		},
	}
}
