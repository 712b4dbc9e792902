package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
	"github.com/kmdeguzman/worship-scheduler/pkg/postgres"
	"github.com/kmdeguzman/worship-scheduler/pkg/roster"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

// BuildScheduleInput carries the per-run parameters for a schedule build.
type BuildScheduleInput struct {
	// StartDate and EndDate bound the schedule. Zero values fall back to the
	// roster's preaching date range.
	StartDate time.Time
	EndDate   time.Time

	// DryRun skips archiving the run.
	DryRun bool

	// Seed fixes the tie-breaking random source so a run can be reproduced.
	// Zero means a fresh source per run.
	Seed int64
}

// BuildScheduleResult contains the built schedule and its run metadata.
type BuildScheduleResult struct {
	RunID           string
	StartDate       time.Time
	EndDate         time.Time
	DatesAdjusted   bool
	EventDates      []time.Time
	Events          []*scheduler.Event
	Team            []*model.Person
	UnassignedSlots int
	Archived        bool
}

// RosterSource provides the team roster, whichever backend it comes from.
type RosterSource interface {
	LoadRoster() (*roster.Roster, error)
}

// ArchiveStore defines the database operations needed to archive a run.
type ArchiveStore interface {
	InsertScheduleRun(ctx context.Context, run postgres.ScheduleRun) error
	InsertAssignments(ctx context.Context, assignments []postgres.Assignment) error
}

// BuildSchedule loads the roster, assigns every role slot for each Sunday in
// the requested range, and archives the result. A nil store disables
// archiving; dryRun skips it for this run only.
func BuildSchedule(
	ctx context.Context,
	source RosterSource,
	store ArchiveStore,
	cfg *config.Config,
	logger *zap.Logger,
	in BuildScheduleInput,
) (*BuildScheduleResult, error) {
	logger.Debug("Starting buildSchedule",
		zap.Time("start", in.StartDate),
		zap.Time("end", in.EndDate),
		zap.Bool("dry_run", in.DryRun))

	// Step 1: Load the roster
	logger.Debug("Loading roster")
	rosterData, err := source.LoadRoster()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	logger.Debug("Loaded roster",
		zap.Int("team_size", len(rosterData.Team)),
		zap.Int("preacher_count", len(rosterData.Preachers)),
		zap.Int("rotation_size", len(rosterData.Rotation)))

	if len(rosterData.Team) == 0 {
		return nil, fmt.Errorf("no team members in roster")
	}

	if missing := roster.MissingRotationNames(rosterData); len(missing) > 0 {
		logger.Warn("Rotation names not found in team, they will never be selected",
			zap.Strings("names", missing))
	}

	// Step 2: Resolve the schedule range from the preaching dates
	rangeStart, rangeEnd, err := PreachingDateRange(rosterData.Preachers)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule range: %w", err)
	}
	start, end, adjusted := AdjustDatesWithinRange(in.StartDate, in.EndDate, rangeStart, rangeEnd)
	if adjusted {
		logger.Warn("Requested dates fall outside the preaching window, adjusting",
			zap.Time("start", start),
			zap.Time("end", end))
	}

	eventDates := dates.Sundays(start, end)
	logger.Debug("Resolved event dates", zap.Int("count", len(eventDates)))
	if len(eventDates) == 0 {
		return nil, fmt.Errorf("%w: no Sundays between %s and %s",
			model.ErrNoEventDates, dates.FormatDate(start), dates.FormatDate(end))
	}

	// Step 3: Build the eligibility rules from config
	params, err := ruleParamsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	rules, err := scheduler.BuildRules(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build eligibility rules: %w", err)
	}
	logger.Debug("Built eligibility rules",
		zap.Int("count", len(rules)),
		zap.Int("special_count", len(params.SpecialRules)))

	// Step 4: Run the scheduler over a copy of the team, so the roster's
	// own people carry no assignment history
	team := model.CloneTeam(rosterData.Team)
	checker := scheduler.NewEligibilityChecker(rules...)
	selector := scheduler.NewRotationSelector(rosterData.Rotation)

	var opts []scheduler.Option
	if in.Seed != 0 {
		opts = append(opts, scheduler.WithRand(rand.New(rand.NewSource(in.Seed))))
	}

	logger.Info("Building schedule",
		zap.String("start", dates.FormatDate(start)),
		zap.String("end", dates.FormatDate(end)),
		zap.Int("event_count", len(eventDates)),
		zap.Int("team_size", len(team)))

	schedule := scheduler.NewSchedule(team, rosterData.Preachers, eventDates, selector, checker, opts...)
	events, team := schedule.Build()

	unassigned := countUnassignedSlots(events)
	logger.Info("Schedule built",
		zap.Int("events", len(events)),
		zap.Int("unassigned_slots", unassigned))
	for _, event := range events {
		if open := event.UnassignedRoles(); len(open) > 0 {
			logger.Debug("Open roles on event",
				zap.String("date", dates.FormatDate(event.Date)),
				zap.Int("count", len(open)))
		}
	}

	// Step 5: Archive the run
	runID := uuid.New().String()
	archived := false
	shouldSave := !in.DryRun && store != nil

	if shouldSave {
		if err := archiveSchedule(ctx, store, runID, start, end, events, len(team)); err != nil {
			return nil, fmt.Errorf("failed to archive schedule: %w", err)
		}
		archived = true
		logger.Info("Schedule archived", zap.String("run_id", runID))
	} else if in.DryRun {
		logger.Info("Dry run mode - schedule not archived")
	} else {
		logger.Debug("No archive store configured - schedule not archived")
	}

	return &BuildScheduleResult{
		RunID:           runID,
		StartDate:       start,
		EndDate:         end,
		DatesAdjusted:   adjusted,
		EventDates:      eventDates,
		Events:          events,
		Team:            team,
		UnassignedSlots: unassigned,
		Archived:        archived,
	}, nil
}

// ArchiveScheduleRun archives an already-built (possibly hand-edited)
// schedule as a new run and returns the run ID.
func ArchiveScheduleRun(
	ctx context.Context,
	store ArchiveStore,
	logger *zap.Logger,
	result *BuildScheduleResult,
) (string, error) {
	if store == nil {
		return "", fmt.Errorf("no archive configured - set postgresUrl in config")
	}

	runID := uuid.New().String()
	if err := archiveSchedule(ctx, store, runID, result.StartDate, result.EndDate, result.Events, len(result.Team)); err != nil {
		return "", fmt.Errorf("failed to archive schedule: %w", err)
	}
	logger.Info("Schedule archived", zap.String("run_id", runID))
	return runID, nil
}

// archiveSchedule persists the run header and one assignment row per role
// slot, open slots included.
func archiveSchedule(
	ctx context.Context,
	store ArchiveStore,
	runID string,
	start, end time.Time,
	events []*scheduler.Event,
	teamSize int,
) error {
	run := postgres.ScheduleRun{
		ID:        runID,
		BuiltAt:   time.Now().UTC(),
		StartDate: start,
		EndDate:   end,
		TeamSize:  teamSize,
	}
	if err := store.InsertScheduleRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save schedule run: %w", err)
	}

	assignments := convertToArchiveAssignments(runID, events)
	if err := store.InsertAssignments(ctx, assignments); err != nil {
		return fmt.Errorf("failed to save assignments: %w", err)
	}
	return nil
}

// convertToArchiveAssignments flattens events into archive assignment records.
// An empty PersonName records that the slot stayed open.
func convertToArchiveAssignments(runID string, events []*scheduler.Event) []postgres.Assignment {
	assignments := make([]postgres.Assignment, 0, len(events)*len(model.AllRoles()))
	for _, event := range events {
		for _, role := range model.ScheduleOrder() {
			assignments = append(assignments, postgres.Assignment{
				ID:         uuid.New().String(),
				RunID:      runID,
				EventDate:  event.Date,
				Role:       string(role),
				PersonName: event.Roles[role],
			})
		}
	}
	return assignments
}

// ruleParamsFromConfig maps config values onto scheduler rule parameters,
// keeping the defaults for anything unset.
func ruleParamsFromConfig(cfg *config.Config) (scheduler.RuleParams, error) {
	params := scheduler.DefaultRuleParams()
	if cfg.ConsecutiveLimit > 0 {
		params.ConsecutiveLimit = cfg.ConsecutiveLimit
	}
	if cfg.RoleConsecutiveLimit > 0 {
		params.RoleLimit = cfg.RoleConsecutiveLimit
	}
	if cfg.PreachingBufferWeeks > 0 {
		params.PreachingBufferWeeks = cfg.PreachingBufferWeeks
	}

	if len(cfg.RoleWindows) > 0 {
		windows := make(map[model.Role]int, len(cfg.RoleWindows))
		for tag, weeks := range cfg.RoleWindows {
			role, err := model.ParseRole(tag)
			if err != nil {
				return scheduler.RuleParams{}, fmt.Errorf("invalid role in roleWindows: %w", err)
			}
			windows[role] = weeks
		}
		params.RoleWindows = windows
	}

	special, err := buildSpecialRules(cfg.SpecialRules)
	if err != nil {
		return scheduler.RuleParams{}, err
	}
	params.SpecialRules = special

	return params, nil
}

// buildSpecialRules converts config special-rule entries into scheduler
// rules, preserving their order. Config validation has already checked the
// per-kind field shapes, so failures here mean the config was never
// validated.
func buildSpecialRules(entries []config.SpecialRule) ([]scheduler.Rule, error) {
	rules := make([]scheduler.Rule, 0, len(entries))
	for i, entry := range entries {
		rule, err := buildSpecialRule(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid special rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func buildSpecialRule(entry config.SpecialRule) (scheduler.Rule, error) {
	switch entry.Kind {
	case config.RuleKindPreacherRequirement:
		role, err := model.ParseRole(entry.Role)
		if err != nil {
			return nil, err
		}
		return scheduler.NewPreacherRequirementRule(entry.Person, role, entry.Preacher), nil

	case config.RuleKindPreacherExclusion:
		role, err := model.ParseRole(entry.Role)
		if err != nil {
			return nil, err
		}
		return scheduler.NewPreacherExclusionRule(entry.Person, role, entry.Preacher), nil

	case config.RuleKindReservedRole:
		role, err := model.ParseRole(entry.Role)
		if err != nil {
			return nil, err
		}
		whenRole, err := model.ParseRole(entry.WhenRole)
		if err != nil {
			return nil, err
		}
		return scheduler.NewReservedRoleRule(role, entry.Person, whenRole, entry.WhenPerson), nil

	case config.RuleKindMutualExclusion:
		return scheduler.NewMutualExclusionRule(entry.Person, entry.Second), nil

	case config.RuleKindRoleCutover:
		role, err := model.ParseRole(entry.Role)
		if err != nil {
			return nil, err
		}
		cutover, err := dates.ParseDate(entry.Cutover)
		if err != nil {
			return nil, err
		}
		return scheduler.NewRoleCutoverRule(entry.Person, role, cutover), nil

	default:
		return nil, fmt.Errorf("unknown special rule kind %q", entry.Kind)
	}
}
