package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// ListTeamCmd creates the listTeam command
func ListTeamCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTeam",
		Short: "List the team, preachers, and worship leader rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listTeam command")

			source, err := app.RosterSource()
			if err != nil {
				return err
			}
			rosterData, err := source.LoadRoster()
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}

			app.Logger.Info("Roster loaded",
				zap.Int("team_size", len(rosterData.Team)),
				zap.Int("preacher_count", len(rosterData.Preachers)))

			fmt.Printf("\nFound %d team members:\n\n", len(rosterData.Team))
			for _, person := range rosterData.Team {
				roles := make([]string, len(person.Roles))
				for i, role := range person.Roles {
					roles[i] = string(role)
				}

				flags := ""
				if person.OnLeave {
					flags = " [ON LEAVE]"
				}
				fmt.Printf("- %s: %s%s\n", person.Name, strings.Join(roles, ", "), flags)

				if len(person.BlockoutDates) > 0 {
					fmt.Printf("    Blockout: %s\n", joinDateList(person.BlockoutDates))
				}
				if len(person.PreachingDates) > 0 {
					fmt.Printf("    Preaching: %s\n", joinDateList(person.PreachingDates))
				}
				if len(person.TeachingDates) > 0 {
					fmt.Printf("    Teaching: %s\n", joinDateList(person.TeachingDates))
				}
			}

			if len(rosterData.Preachers) > 0 {
				fmt.Printf("\nPreachers:\n")
				for _, preacher := range rosterData.Preachers {
					graphics := ""
					if preacher.GraphicsSupport != "" {
						graphics = fmt.Sprintf(" [Graphics: %s]", preacher.GraphicsSupport)
					}
					fmt.Printf("- %s%s: %s\n", preacher.Name, graphics, joinDateList(preacher.Dates))
				}
			}

			if len(rosterData.Rotation) > 0 {
				fmt.Printf("\nWorship leader rotation: %s\n", strings.Join(rosterData.Rotation, " → "))
			}
			fmt.Println()

			return nil
		},
	}
}

func joinDateList(list []time.Time) string {
	formatted := make([]string, len(list))
	for i, d := range list {
		formatted[i] = dates.FormatDate(d)
	}
	return strings.Join(formatted, ", ")
}
