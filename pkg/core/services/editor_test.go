package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
)

// editorFixture returns an event with the worship leader slot held by Gee.
func editorFixture(t *testing.T) (*scheduler.Event, *model.Person, *model.Person) {
	t.Helper()

	gee := model.NewPerson("Gee", []model.Role{model.RoleWorshipLeader, model.RoleAcoustic})
	dave := model.NewPerson("Dave", []model.Role{model.RoleWorshipLeader, model.RoleBass})

	event := scheduler.NewEvent(date(2025, time.April, 6), []*model.Person{gee, dave}, nil)
	require.NoError(t, event.AssignRole(model.RoleWorshipLeader, gee))

	return event, gee, dave
}

func TestEditAssignmentCommand_Swap(t *testing.T) {
	event, gee, dave := editorFixture(t)
	cmd := &EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: dave,
	}

	require.NoError(t, cmd.Execute())

	name, ok := event.Assignee(model.RoleWorshipLeader)
	require.True(t, ok)
	assert.Equal(t, "Dave", name)
	assert.Empty(t, gee.AssignedDates)
	assert.Len(t, dave.AssignedDates, 1)
}

func TestEditAssignmentCommand_FillOpenSlot(t *testing.T) {
	event, _, dave := editorFixture(t)
	cmd := &EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleBass,
		NewPerson: dave,
	}

	require.NoError(t, cmd.Execute())

	name, ok := event.Assignee(model.RoleBass)
	require.True(t, ok)
	assert.Equal(t, "Dave", name)
}

func TestEditAssignmentCommand_ClearSlot(t *testing.T) {
	event, gee, _ := editorFixture(t)
	cmd := &EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
	}

	require.NoError(t, cmd.Execute())

	_, ok := event.Assignee(model.RoleWorshipLeader)
	assert.False(t, ok)
	assert.Empty(t, gee.AssignedDates)
}

func TestEditAssignmentCommand_FailedSwapRestoresOld(t *testing.T) {
	event, gee, _ := editorFixture(t)
	ghost := model.NewPerson("Ghost", []model.Role{model.RoleWorshipLeader})
	cmd := &EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: ghost,
	}

	err := cmd.Execute()

	require.ErrorIs(t, err, model.ErrPersonNotInTeam)
	name, ok := event.Assignee(model.RoleWorshipLeader)
	require.True(t, ok)
	assert.Equal(t, "Gee", name)
	assert.Len(t, gee.AssignedDates, 1)
}

func TestEditAssignmentCommand_Undo(t *testing.T) {
	event, gee, dave := editorFixture(t)
	cmd := &EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: dave,
	}
	require.NoError(t, cmd.Execute())

	require.NoError(t, cmd.Undo())

	name, ok := event.Assignee(model.RoleWorshipLeader)
	require.True(t, ok)
	assert.Equal(t, "Gee", name)
	assert.Len(t, gee.AssignedDates, 1)
	assert.Empty(t, dave.AssignedDates)
}

func TestEditAssignmentCommand_Describe(t *testing.T) {
	event, gee, dave := editorFixture(t)

	swap := &EditAssignmentCommand{Event: event, Role: model.RoleWorshipLeader, OldPerson: gee, NewPerson: dave}
	assert.Equal(t, "WORSHIP LEADER on 2025-04-06: Gee -> Dave", swap.Describe())

	fill := &EditAssignmentCommand{Event: event, Role: model.RoleBass, NewPerson: dave}
	assert.Equal(t, "BASS on 2025-04-06: (open) -> Dave", fill.Describe())

	release := &EditAssignmentCommand{Event: event, Role: model.RoleWorshipLeader, OldPerson: gee}
	assert.Equal(t, "WORSHIP LEADER on 2025-04-06: Gee -> (open)", release.Describe())
}

func TestScheduleEditor_ApplyUndoRedo(t *testing.T) {
	event, gee, dave := editorFixture(t)
	editor := NewScheduleEditor()

	require.NoError(t, editor.Apply(&EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: dave,
	}))
	assert.True(t, editor.CanUndo())
	assert.False(t, editor.CanRedo())

	undone, err := editor.Undo()
	require.NoError(t, err)
	assert.Equal(t, model.RoleWorshipLeader, undone.Role)
	name, _ := event.Assignee(model.RoleWorshipLeader)
	assert.Equal(t, "Gee", name)
	assert.False(t, editor.CanUndo())
	assert.True(t, editor.CanRedo())

	redone, err := editor.Redo()
	require.NoError(t, err)
	assert.Equal(t, model.RoleWorshipLeader, redone.Role)
	name, _ = event.Assignee(model.RoleWorshipLeader)
	assert.Equal(t, "Dave", name)
	assert.True(t, editor.CanUndo())
	assert.False(t, editor.CanRedo())
}

func TestScheduleEditor_ApplyClearsRedo(t *testing.T) {
	event, gee, dave := editorFixture(t)
	editor := NewScheduleEditor()

	require.NoError(t, editor.Apply(&EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: dave,
	}))
	_, err := editor.Undo()
	require.NoError(t, err)
	require.True(t, editor.CanRedo())

	require.NoError(t, editor.Apply(&EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleBass,
		NewPerson: dave,
	}))

	assert.False(t, editor.CanRedo())
}

func TestScheduleEditor_FailedApplyLeavesHistory(t *testing.T) {
	event, gee, _ := editorFixture(t)
	ghost := model.NewPerson("Ghost", []model.Role{model.RoleWorshipLeader})
	editor := NewScheduleEditor()

	err := editor.Apply(&EditAssignmentCommand{
		Event:     event,
		Role:      model.RoleWorshipLeader,
		OldPerson: gee,
		NewPerson: ghost,
	})

	require.Error(t, err)
	assert.False(t, editor.CanUndo())
}

func TestScheduleEditor_UndoEmpty(t *testing.T) {
	editor := NewScheduleEditor()

	_, err := editor.Undo()

	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestScheduleEditor_RedoEmpty(t *testing.T) {
	editor := NewScheduleEditor()

	_, err := editor.Redo()

	assert.ErrorIs(t, err, ErrNothingToRedo)
}
