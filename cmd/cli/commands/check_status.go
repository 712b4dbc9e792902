package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/services"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// CheckStatusCmd creates the checkStatus command
func CheckStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkStatus <date>",
		Short: "Show what every team member is doing on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkDate, err := dates.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date (expected YYYY-MM-DD): %w", err)
			}

			app.Logger.Debug("checkStatus command", zap.String("date", args[0]))

			source, err := app.RosterSource()
			if err != nil {
				return err
			}
			result, err := services.TeamStatus(source, app.Cfg, app.Logger, checkDate)
			if err != nil {
				return err
			}

			// ANSI color codes
			const (
				colorReset  = "\033[0m"
				colorGreen  = "\033[32m"
				colorRed    = "\033[31m"
				colorYellow = "\033[33m"
				colorDim    = "\033[2m"
			)

			fmt.Printf("\nTeam status on %s:\n\n", dates.FormatDate(result.Date))

			// Calculate column width
			maxNameLen := 10
			for _, member := range result.Members {
				if len(member.Name) > maxNameLen {
					maxNameLen = len(member.Name)
				}
			}
			nameColWidth := maxNameLen + 2

			for _, member := range result.Members {
				var color string
				switch member.Status {
				case model.StatusUnassigned:
					color = colorGreen
				case model.StatusAssigned:
					color = colorDim
				case model.StatusOnLeave, model.StatusBlockedOut:
					color = colorRed
				default:
					color = colorYellow
				}

				roles := make([]string, len(member.Roles))
				for i, role := range member.Roles {
					roles[i] = string(role)
				}
				fmt.Printf("  %-*s %s%-12s%s %s\n",
					nameColWidth, member.Name,
					color, member.Status, colorReset,
					strings.Join(roles, ", "))
			}

			// Legend
			fmt.Println()
			fmt.Println("Legend:")
			fmt.Printf("  %sUNASSIGNED%s  = free to serve that day\n", colorGreen, colorReset)
			fmt.Printf("  %sASSIGNED%s    = already holds a role that day\n", colorDim, colorReset)
			fmt.Printf("  %sPREACHING%s   = preaching, %sTEACHING%s = Sunday school, %sBREAK%s = fatigue window full\n",
				colorYellow, colorReset, colorYellow, colorReset, colorYellow, colorReset)
			fmt.Printf("  %sON-LEAVE%s    = away, %sBLOCKEDOUT%s = blocked that date\n",
				colorRed, colorReset, colorRed, colorReset)

			return nil
		},
	}
}
