package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmdeguzman/worship-scheduler/internal/config"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/postgres"
	"github.com/kmdeguzman/worship-scheduler/pkg/roster"
)

// fakeRosterSource implements RosterSource for testing
type fakeRosterSource struct {
	roster  *roster.Roster
	loadErr error
}

func (f *fakeRosterSource) LoadRoster() (*roster.Roster, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.roster, nil
}

// fakeArchiveStore implements ArchiveStore for testing
type fakeArchiveStore struct {
	runs               []postgres.ScheduleRun
	assignments        []postgres.Assignment
	insertRunErr       error
	insertAssignErr    error
	getRunsErr         error
	getAssignmentsErr  error
	assignmentsByRunID map[string][]postgres.Assignment
}

func (f *fakeArchiveStore) InsertScheduleRun(ctx context.Context, run postgres.ScheduleRun) error {
	if f.insertRunErr != nil {
		return f.insertRunErr
	}
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeArchiveStore) InsertAssignments(ctx context.Context, assignments []postgres.Assignment) error {
	if f.insertAssignErr != nil {
		return f.insertAssignErr
	}
	f.assignments = append(f.assignments, assignments...)
	return nil
}

func (f *fakeArchiveStore) GetScheduleRuns(ctx context.Context) ([]postgres.ScheduleRun, error) {
	if f.getRunsErr != nil {
		return nil, f.getRunsErr
	}
	return f.runs, nil
}

func (f *fakeArchiveStore) GetAssignments(ctx context.Context, runID string) ([]postgres.Assignment, error) {
	if f.getAssignmentsErr != nil {
		return nil, f.getAssignmentsErr
	}
	return f.assignmentsByRunID[runID], nil
}

// testRoster returns a small roster whose preaching dates cover the four
// April 2025 Sundays.
func testRoster() *roster.Roster {
	gee := model.NewPerson("Gee", []model.Role{model.RoleWorshipLeader, model.RoleAcoustic})
	dave := model.NewPerson("Dave", []model.Role{model.RoleWorshipLeader, model.RoleBass})
	mike := model.NewPerson("Mike", []model.Role{model.RoleEmcee, model.RoleAudio, model.RoleLyrics})
	anna := model.NewPerson("Anna", []model.Role{model.RoleKeys, model.RoleLive})

	edmund := model.NewPreacher("Edmund", "Daisy", []time.Time{
		date(2025, time.April, 6),
		date(2025, time.April, 20),
	})
	sarah := model.NewPreacher("Sarah", "", []time.Time{
		date(2025, time.April, 13),
		date(2025, time.April, 27),
	})

	return &roster.Roster{
		Team:      []*model.Person{gee, dave, mike, anna},
		Preachers: []*model.Preacher{edmund, sarah},
		Rotation:  []string{"Gee", "Dave"},
	}
}

func TestBuildSchedule_BuildsAndArchives(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	store := &fakeArchiveStore{}
	cfg := &config.Config{}
	logger := zap.NewNop()

	result, err := BuildSchedule(context.Background(), source, store, cfg, logger, BuildScheduleInput{})

	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, date(2025, time.April, 6), result.StartDate)
	assert.Equal(t, date(2025, time.April, 27), result.EndDate)
	assert.False(t, result.DatesAdjusted)
	require.Len(t, result.EventDates, 4)
	require.Len(t, result.Events, 4)
	assert.True(t, result.Archived)

	require.Len(t, store.runs, 1)
	assert.Equal(t, result.RunID, store.runs[0].ID)
	assert.Equal(t, 4, store.runs[0].TeamSize)

	// One archive row per role slot per event, open slots included.
	assert.Len(t, store.assignments, 4*len(model.AllRoles()))
	for _, a := range store.assignments {
		assert.Equal(t, result.RunID, a.RunID)
	}
}

func TestBuildSchedule_AssignsWorshipLeaderFromRotation(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	cfg := &config.Config{}

	result, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	require.NoError(t, err)
	first := result.Events[0]
	leader, ok := first.Assignee(model.RoleWorshipLeader)
	require.True(t, ok)
	assert.Contains(t, []string{"Gee", "Dave"}, leader)
}

func TestBuildSchedule_DryRunSkipsArchive(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	store := &fakeArchiveStore{}
	cfg := &config.Config{}

	result, err := BuildSchedule(context.Background(), source, store, cfg, zap.NewNop(), BuildScheduleInput{DryRun: true})

	require.NoError(t, err)
	assert.False(t, result.Archived)
	assert.Empty(t, store.runs)
	assert.Empty(t, store.assignments)
}

func TestBuildSchedule_NoStoreSkipsArchive(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	cfg := &config.Config{}

	result, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	require.NoError(t, err)
	assert.False(t, result.Archived)
	require.Len(t, result.Events, 4)
}

func TestBuildSchedule_ClampsRequestedRange(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	cfg := &config.Config{}

	result, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{
		StartDate: date(2025, time.March, 1),
		EndDate:   date(2025, time.December, 25),
	})

	require.NoError(t, err)
	assert.True(t, result.DatesAdjusted)
	assert.Equal(t, date(2025, time.April, 6), result.StartDate)
	assert.Equal(t, date(2025, time.April, 27), result.EndDate)
}

func TestBuildSchedule_RosterLoadError(t *testing.T) {
	source := &fakeRosterSource{loadErr: errors.New("tab not found")}
	cfg := &config.Config{}

	_, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load roster")
}

func TestBuildSchedule_NoPreachingDates(t *testing.T) {
	r := testRoster()
	r.Preachers = []*model.Preacher{model.NewPreacher("Edmund", "", nil)}
	source := &fakeRosterSource{roster: r}
	cfg := &config.Config{}

	_, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	assert.ErrorIs(t, err, model.ErrNoPreachingDates)
}

func TestBuildSchedule_NoSundaysInRange(t *testing.T) {
	r := testRoster()
	// A single midweek preaching date leaves a window with no Sunday in it.
	r.Preachers = []*model.Preacher{
		model.NewPreacher("Edmund", "", []time.Time{date(2025, time.April, 9)}),
	}
	source := &fakeRosterSource{roster: r}
	cfg := &config.Config{}

	_, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	assert.ErrorIs(t, err, model.ErrNoEventDates)
}

func TestBuildSchedule_ArchiveErrorPropagates(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	store := &fakeArchiveStore{insertRunErr: errors.New("connection refused")}
	cfg := &config.Config{}

	_, err := BuildSchedule(context.Background(), source, store, cfg, zap.NewNop(), BuildScheduleInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive schedule")
}

func TestBuildSchedule_SeedReproducesAssignments(t *testing.T) {
	cfg := &config.Config{}

	build := func() map[string]string {
		source := &fakeRosterSource{roster: testRoster()}
		result, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{Seed: 42})
		require.NoError(t, err)

		flat := make(map[string]string)
		for _, event := range result.Events {
			for role, name := range event.Roles {
				flat[event.Date.Format("2006-01-02")+"/"+string(role)] = name
			}
		}
		return flat
	}

	assert.Equal(t, build(), build())
}

func TestBuildSchedule_DoesNotMutateRosterTeam(t *testing.T) {
	r := testRoster()
	source := &fakeRosterSource{roster: r}
	cfg := &config.Config{}

	_, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})

	require.NoError(t, err)
	for _, person := range r.Team {
		assert.Empty(t, person.AssignedDates, "roster person %s should carry no history", person.Name)
	}
}

func TestArchiveScheduleRun(t *testing.T) {
	source := &fakeRosterSource{roster: testRoster()}
	store := &fakeArchiveStore{}
	cfg := &config.Config{}

	result, err := BuildSchedule(context.Background(), source, nil, cfg, zap.NewNop(), BuildScheduleInput{})
	require.NoError(t, err)

	runID, err := ArchiveScheduleRun(context.Background(), store, zap.NewNop(), result)

	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.NotEqual(t, result.RunID, runID)
	require.Len(t, store.runs, 1)
	assert.Len(t, store.assignments, 4*len(model.AllRoles()))
}

func TestArchiveScheduleRun_NoStore(t *testing.T) {
	_, err := ArchiveScheduleRun(context.Background(), nil, zap.NewNop(), &BuildScheduleResult{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no archive configured")
}

func TestRuleParamsFromConfig_Defaults(t *testing.T) {
	params, err := ruleParamsFromConfig(&config.Config{})

	require.NoError(t, err)
	assert.Equal(t, 3, params.ConsecutiveLimit)
	assert.Equal(t, 2, params.RoleLimit)
	assert.Equal(t, 1, params.PreachingBufferWeeks)
	assert.Nil(t, params.RoleWindows)
	assert.Empty(t, params.SpecialRules)
}

func TestRuleParamsFromConfig_Overrides(t *testing.T) {
	cfg := &config.Config{
		ConsecutiveLimit:     2,
		RoleConsecutiveLimit: 1,
		PreachingBufferWeeks: 2,
		RoleWindows: map[string]int{
			"WORSHIP LEADER": 6,
			"KEYS":           3,
		},
	}

	params, err := ruleParamsFromConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, 2, params.ConsecutiveLimit)
	assert.Equal(t, 1, params.RoleLimit)
	assert.Equal(t, 2, params.PreachingBufferWeeks)
	assert.Equal(t, 6, params.RoleWindows[model.RoleWorshipLeader])
	assert.Equal(t, 3, params.RoleWindows[model.RoleKeys])
}

func TestRuleParamsFromConfig_InvalidRoleWindow(t *testing.T) {
	cfg := &config.Config{
		RoleWindows: map[string]int{"TRIANGLE": 4},
	}

	_, err := ruleParamsFromConfig(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidRole)
}

func TestBuildSpecialRules(t *testing.T) {
	entries := []config.SpecialRule{
		{Kind: config.RuleKindPreacherRequirement, Person: "Gee", Role: "KEYS", Preacher: "Edmund"},
		{Kind: config.RuleKindPreacherExclusion, Person: "Dave", Role: "LYRICS", Preacher: "Sarah"},
		{Kind: config.RuleKindReservedRole, Person: "Anna", Role: "KEYS", WhenRole: "WORSHIP LEADER", WhenPerson: "Gee"},
		{Kind: config.RuleKindMutualExclusion, Person: "Gee", Second: "Dave"},
		{Kind: config.RuleKindRoleCutover, Person: "Mike", Role: "AUDIO", Cutover: "2025-06-01"},
	}

	rules, err := buildSpecialRules(entries)

	require.NoError(t, err)
	require.Len(t, rules, 5)
	assert.Contains(t, rules[0].Name(), "PreacherRequirement")
	assert.Contains(t, rules[1].Name(), "PreacherExclusion")
	assert.Contains(t, rules[2].Name(), "ReservedRole")
	assert.Contains(t, rules[3].Name(), "MutualExclusion")
	assert.Contains(t, rules[4].Name(), "RoleCutover")
}

func TestBuildSpecialRules_UnknownKind(t *testing.T) {
	_, err := buildSpecialRules([]config.SpecialRule{{Kind: "banishment"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown special rule kind")
}

func TestBuildSpecialRules_InvalidCutoverDate(t *testing.T) {
	entries := []config.SpecialRule{
		{Kind: config.RuleKindRoleCutover, Person: "Mike", Role: "AUDIO", Cutover: "June 1st"},
	}

	_, err := buildSpecialRules(entries)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid special rule 0")
}
