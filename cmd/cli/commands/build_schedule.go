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

// BuildScheduleCmd creates the buildSchedule command
func BuildScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildSchedule",
		Short: "Build the weekly schedule and export it",
		Long:  "Assign team members to every role for each Sunday in the range, archive the run, and write the schedule files.",
		RunE: func(cmd *cobra.Command, args []string) error {
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			seed, _ := cmd.Flags().GetInt64("seed")
			formats, _ := cmd.Flags().GetStringSlice("formats")

			in := services.BuildScheduleInput{DryRun: dryRun, Seed: seed}
			var err error
			if startStr != "" {
				in.StartDate, err = dates.ParseDate(startStr)
				if err != nil {
					return fmt.Errorf("invalid --start date (expected YYYY-MM-DD): %w", err)
				}
			}
			if endStr != "" {
				in.EndDate, err = dates.ParseDate(endStr)
				if err != nil {
					return fmt.Errorf("invalid --end date (expected YYYY-MM-DD): %w", err)
				}
			}

			app.Logger.Debug("buildSchedule command",
				zap.String("start", startStr),
				zap.String("end", endStr),
				zap.Bool("dry_run", dryRun),
				zap.Int64("seed", seed))

			source, err := app.RosterSource()
			if err != nil {
				return err
			}
			store, err := app.Archive()
			if err != nil {
				return err
			}

			result, err := services.BuildSchedule(app.Ctx, source, store, app.Cfg, app.Logger, in)
			if err != nil {
				return err
			}

			paths, err := services.ExportSchedule(app.Cfg, app.Logger, services.ExportScheduleInput{
				Events:    result.Events,
				Team:      result.Team,
				StartDate: result.StartDate,
				EndDate:   result.EndDate,
				Formats:   formats,
			})
			if err != nil {
				return err
			}

			printScheduleSummary(result, paths, dryRun)
			return nil
		},
	}

	cmd.Flags().String("start", "", "Schedule start date (YYYY-MM-DD, default: first preaching date)")
	cmd.Flags().String("end", "", "Schedule end date (YYYY-MM-DD, default: last preaching date)")
	cmd.Flags().Bool("dry-run", false, "Build without archiving the run")
	cmd.Flags().Int64("seed", 0, "Seed for random tie-breaking (0 = fresh each run)")
	cmd.Flags().StringSlice("formats", nil, "Output formats: csv, html, pdf (default: csv,html)")

	return cmd
}

func printScheduleSummary(result *services.BuildScheduleResult, paths []string, dryRun bool) {
	// ANSI color codes
	const (
		colorReset = "\033[0m"
		colorGreen = "\033[32m"
		colorRed   = "\033[31m"
		colorBold  = "\033[1m"
	)

	fmt.Printf("\n✓ Schedule built!\n\n")
	fmt.Printf("Range:  %s to %s\n", dates.FormatDate(result.StartDate), dates.FormatDate(result.EndDate))
	if result.DatesAdjusted {
		fmt.Printf("        (adjusted to fit the preaching window)\n")
	}
	fmt.Printf("Events: %d\n", len(result.Events))
	if dryRun {
		fmt.Printf("Mode:   DRY RUN (not archived)\n")
	} else if result.Archived {
		fmt.Printf("Run ID: %s\n", result.RunID)
	}
	fmt.Println()

	// Calculate column widths
	maxLeaderLen := len("Worship Leader")
	maxPreacherLen := len("Preacher")
	for _, event := range result.Events {
		if name := event.Roles[model.RoleWorshipLeader]; len(name) > maxLeaderLen {
			maxLeaderLen = len(name)
		}
		if preacher := event.Preacher(); preacher != nil && len(preacher.Name) > maxPreacherLen {
			maxPreacherLen = len(preacher.Name)
		}
	}

	dateColWidth := 12
	preacherColWidth := maxPreacherLen + 2
	leaderColWidth := maxLeaderLen + 2

	// Print header
	fmt.Printf("%s%-*s  %-*s  %-*s  %s%s\n",
		colorBold,
		dateColWidth, "Date",
		preacherColWidth, "Preacher",
		leaderColWidth, "Worship Leader",
		"Filled",
		colorReset)

	fmt.Print(strings.Repeat("-", dateColWidth))
	fmt.Print("  ")
	fmt.Print(strings.Repeat("-", preacherColWidth))
	fmt.Print("  ")
	fmt.Print(strings.Repeat("-", leaderColWidth))
	fmt.Print("  ")
	fmt.Println("------")

	for _, event := range result.Events {
		fmt.Printf("%-*s  ", dateColWidth, dates.FormatDate(event.Date))

		preacherName := "—"
		if preacher := event.Preacher(); preacher != nil {
			preacherName = preacher.Name
		}
		fmt.Printf("%-*s  ", preacherColWidth, preacherName)

		leader := event.Roles[model.RoleWorshipLeader]
		if leader == "" {
			leader = "—"
		}
		fmt.Printf("%-*s  ", leaderColWidth, leader)

		total := len(event.Roles)
		filled := total - len(event.UnassignedRoles())
		cell := fmt.Sprintf("%d/%d", filled, total)
		if filled == total {
			fmt.Printf("%s%s%s\n", colorGreen, cell, colorReset)
		} else {
			fmt.Printf("%s\n", cell)
		}
	}
	fmt.Println()

	if result.UnassignedSlots > 0 {
		fmt.Printf("%s%d role slots are still open:%s\n", colorRed, result.UnassignedSlots, colorReset)
		for _, event := range result.Events {
			open := event.UnassignedRoles()
			if len(open) == 0 {
				continue
			}
			names := make([]string, len(open))
			for i, role := range open {
				names[i] = string(role)
			}
			fmt.Printf("  • %s: %s\n", dates.FormatDate(event.Date), strings.Join(names, ", "))
		}
		fmt.Println()
	}

	fmt.Printf("Files written:\n")
	for _, path := range paths {
		fmt.Printf("  • %s\n", path)
	}
	fmt.Println()
}
