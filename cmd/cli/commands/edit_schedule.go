package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/services"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// EditScheduleCmd creates the editSchedule command
func EditScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editSchedule",
		Short: "Build a schedule and adjust assignments by hand",
		Long: `Build a schedule, then swap, fill, or clear assignments interactively.
Edits support undo and redo. The session archives and exports only when you
ask it to, so nothing is saved until you are happy with the result.

Type 'help' inside the session for the session commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			startStr, _ := cmd.Flags().GetString("start")
			endStr, _ := cmd.Flags().GetString("end")
			seed, _ := cmd.Flags().GetInt64("seed")

			// The session decides when to archive, so the build itself
			// runs as a dry run.
			in := services.BuildScheduleInput{DryRun: true, Seed: seed}
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

			app.Logger.Debug("editSchedule command",
				zap.String("start", startStr),
				zap.String("end", endStr),
				zap.Int64("seed", seed))

			source, err := app.RosterSource()
			if err != nil {
				return err
			}
			result, err := services.BuildSchedule(app.Ctx, source, nil, app.Cfg, app.Logger, in)
			if err != nil {
				return err
			}

			return runEditSession(app, result, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("start", "", "Schedule start date (YYYY-MM-DD, default: first preaching date)")
	cmd.Flags().String("end", "", "Schedule end date (YYYY-MM-DD, default: last preaching date)")
	cmd.Flags().Int64("seed", 0, "Seed for random tie-breaking (0 = fresh each run)")

	return cmd
}

// runEditSession reads edit commands until done/quit or end of input.
func runEditSession(app *AppContext, result *services.BuildScheduleResult, in io.Reader, out io.Writer) error {
	editor := services.NewScheduleEditor()
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "\nEditing schedule %s to %s (%d events).\n",
		dates.FormatDate(result.StartDate), dates.FormatDate(result.EndDate), len(result.Events))
	fmt.Fprintln(out, "Type 'help' for commands, 'done' to finish.")

	for {
		fmt.Fprint(out, "edit> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb := line
		rest := ""
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			verb, rest = line[:i], strings.TrimSpace(line[i+1:])
		}

		switch strings.ToLower(verb) {
		case "done", "exit", "quit":
			return nil

		case "help":
			printEditHelp(out)

		case "show":
			if rest == "" {
				printEditOverview(out, result)
				continue
			}
			event, err := findEvent(result, rest)
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			printEventDetail(out, event, app.Cfg.ConsecutiveLimit)

		case "set":
			cmd, err := parseSetCommand(result, rest)
			if err == nil {
				err = editor.Apply(cmd)
			}
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ %s\n", cmd.Describe())

		case "clear":
			cmd, err := parseClearCommand(result, rest)
			if err == nil {
				err = editor.Apply(cmd)
			}
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ %s\n", cmd.Describe())

		case "undo":
			cmd, err := editor.Undo()
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ undid %s\n", cmd.Describe())

		case "redo":
			cmd, err := editor.Redo()
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ redid %s\n", cmd.Describe())

		case "export":
			var formats []string
			for _, f := range strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' }) {
				formats = append(formats, strings.TrimSpace(f))
			}
			paths, err := services.ExportSchedule(app.Cfg, app.Logger, services.ExportScheduleInput{
				Events:    result.Events,
				Team:      result.Team,
				StartDate: result.StartDate,
				EndDate:   result.EndDate,
				Formats:   formats,
			})
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			for _, path := range paths {
				fmt.Fprintf(out, "✓ wrote %s\n", path)
			}

		case "archive":
			store, err := app.Archive()
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			runID, err := services.ArchiveScheduleRun(app.Ctx, store, app.Logger, result)
			if err != nil {
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ archived as run %s\n", runID)

		default:
			fmt.Fprintf(out, "✗ unknown command %q (type 'help')\n", verb)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func printEditHelp(out io.Writer) {
	fmt.Fprintln(out, "\nSession commands:")
	fmt.Fprintln(out, "  show                       Show the whole schedule")
	fmt.Fprintln(out, "  show <date>                Show one event in detail")
	fmt.Fprintln(out, "  set <date>, <role>, <name> Put a person on a role (swapping out the holder)")
	fmt.Fprintln(out, "  clear <date>, <role>       Open a role slot")
	fmt.Fprintln(out, "  undo / redo                Step backwards or forwards through edits")
	fmt.Fprintln(out, "  export [formats]           Write schedule files (default: csv,html)")
	fmt.Fprintln(out, "  archive                    Save this schedule as a new archived run")
	fmt.Fprintln(out, "  done                       Leave the session")
	fmt.Fprintln(out, "\nDates are YYYY-MM-DD; roles and names match the roster.")
}

func printEditOverview(out io.Writer, result *services.BuildScheduleResult) {
	for _, event := range result.Events {
		open := len(event.UnassignedRoles())
		preacherName := "—"
		if preacher := event.Preacher(); preacher != nil {
			preacherName = preacher.Name
		}
		fmt.Fprintf(out, "\n%s  (preacher: %s, open slots: %d)\n",
			dates.FormatDate(event.Date), preacherName, open)
		for _, role := range model.ScheduleOrder() {
			name := event.Roles[role]
			if name == "" {
				name = "—"
			}
			fmt.Fprintf(out, "  %-22s %s\n", role, name)
		}
	}
	fmt.Fprintln(out)
}

func printEventDetail(out io.Writer, event *scheduler.Event, consecutiveLimit int) {
	fmt.Fprintf(out, "\nEvent on %s\n", dates.FormatDate(event.Date))
	if preacher := event.Preacher(); preacher != nil {
		fmt.Fprintf(out, "  Preacher: %s\n", preacher.Name)
		if preacher.GraphicsSupport != "" {
			fmt.Fprintf(out, "  Graphics: %s\n", preacher.GraphicsSupport)
		}
	}

	for _, role := range model.ScheduleOrder() {
		name := event.Roles[role]
		if name == "" {
			name = "—"
		}
		fmt.Fprintf(out, "  %-22s %s\n", role, name)
	}

	unassigned := event.UnassignedNames()
	if len(unassigned) > 0 {
		fmt.Fprintln(out, "  Not serving:")
		for _, name := range unassigned {
			person, ok := event.PersonFor(name)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "    %s (%s)\n", name, model.StatusOn(person, event.Date, consecutiveLimit))
		}
	}
	fmt.Fprintln(out)
}

// parseSetCommand parses "set <date>, <role>, <name>" arguments.
func parseSetCommand(result *services.BuildScheduleResult, rest string) (*services.EditAssignmentCommand, error) {
	parts := strings.Split(rest, ",")
	if len(parts) != 3 {
		return nil, errors.New("usage: set <date>, <role>, <name>")
	}

	event, err := findEvent(result, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	role, err := model.ParseRole(strings.ToUpper(strings.TrimSpace(parts[1])))
	if err != nil {
		return nil, err
	}
	person, err := findPerson(result.Team, strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, err
	}
	if !event.IsAssignableIfNeeded(role, person) {
		return nil, fmt.Errorf("%s cannot take %s on %s (on leave, missing the role, or unavailable that day)",
			person.Name, role, dates.FormatDate(event.Date))
	}

	return &services.EditAssignmentCommand{
		Event:     event,
		Role:      role,
		OldPerson: currentHolder(event, role),
		NewPerson: person,
	}, nil
}

// parseClearCommand parses "clear <date>, <role>" arguments.
func parseClearCommand(result *services.BuildScheduleResult, rest string) (*services.EditAssignmentCommand, error) {
	parts := strings.Split(rest, ",")
	if len(parts) != 2 {
		return nil, errors.New("usage: clear <date>, <role>")
	}

	event, err := findEvent(result, strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	role, err := model.ParseRole(strings.ToUpper(strings.TrimSpace(parts[1])))
	if err != nil {
		return nil, err
	}

	holder := currentHolder(event, role)
	if holder == nil {
		return nil, fmt.Errorf("%s on %s is already open", role, dates.FormatDate(event.Date))
	}

	return &services.EditAssignmentCommand{
		Event:     event,
		Role:      role,
		OldPerson: holder,
	}, nil
}

func findEvent(result *services.BuildScheduleResult, dateStr string) (*scheduler.Event, error) {
	d, err := dates.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateStr)
	}
	for _, event := range result.Events {
		if event.Date.Equal(d) {
			return event, nil
		}
	}
	return nil, fmt.Errorf("no event on %s", dateStr)
}

func findPerson(team []*model.Person, name string) (*model.Person, error) {
	for _, person := range team {
		if strings.EqualFold(person.Name, name) {
			return person, nil
		}
	}
	return nil, fmt.Errorf("%q is not in the team", name)
}

func currentHolder(event *scheduler.Event, role model.Role) *model.Person {
	name, ok := event.Assignee(role)
	if !ok {
		return nil
	}
	person, ok := event.PersonFor(name)
	if !ok {
		return nil
	}
	return person
}
