package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/services"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// ViewRunCmd creates the viewRun command
func ViewRunCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRun [run_id]",
		Short: "Show the assignments of an archived run (defaults to latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			app.Logger.Debug("viewRun command", zap.String("run_id", runID))

			store, err := app.History()
			if err != nil {
				return err
			}
			assignments, err := services.GetRunAssignments(app.Ctx, store, app.Logger, runID)
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Println("\nThe run has no assignments.")
				return nil
			}

			fmt.Printf("\nRun %s:\n", assignments[0].RunID)

			// Assignments come back ordered by date then role, so a date
			// header is printed each time the date changes.
			var lastDate string
			for _, a := range assignments {
				d := dates.FormatDate(a.EventDate)
				if d != lastDate {
					fmt.Printf("\n%s\n", d)
					lastDate = d
				}

				person := a.PersonName
				if person == "" {
					person = "—"
				}
				fmt.Printf("  %-22s %s\n", a.Role, person)
			}
			fmt.Println()

			return nil
		},
	}
}
