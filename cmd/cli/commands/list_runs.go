package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/services"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List archived schedule runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listRuns command")

			store, err := app.History()
			if err != nil {
				return err
			}
			runs, err := services.ListRuns(app.Ctx, store, app.Logger)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("\nNo archived runs yet. Build a schedule first.")
				return nil
			}

			fmt.Printf("\nFound %d archived runs:\n\n", len(runs))
			fmt.Printf("%-38s %-18s %-26s %s\n", "Run ID", "Built", "Range", "Team")
			for _, run := range runs {
				fmt.Printf("%-38s %-18s %s to %s  %d\n",
					run.ID,
					run.BuiltAt.Format("2006-01-02 15:04"),
					dates.FormatDate(run.StartDate),
					dates.FormatDate(run.EndDate),
					run.TeamSize)
			}
			fmt.Println()

			return nil
		},
	}
}
