package services

import (
	"errors"
	"fmt"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
	"github.com/kmdeguzman/worship-scheduler/pkg/utils/dates"
)

var (
	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// EditAssignmentCommand changes who holds one role on one event. A nil
// OldPerson fills an open slot; a nil NewPerson opens the slot. Execute and
// Undo both leave the event untouched when they fail partway.
type EditAssignmentCommand struct {
	Event     *scheduler.Event
	Role      model.Role
	OldPerson *model.Person
	NewPerson *model.Person
}

// Execute applies the edit: the old assignee comes off the slot and their
// history, the new one goes on.
func (c *EditAssignmentCommand) Execute() error {
	if c.OldPerson != nil {
		if err := c.Event.UnassignRole(c.Role, c.OldPerson); err != nil {
			return err
		}
	}
	if c.NewPerson != nil {
		if err := c.Event.AssignRole(c.Role, c.NewPerson); err != nil {
			// Put the old assignee back so a failed swap changes nothing.
			if c.OldPerson != nil {
				if restoreErr := c.Event.AssignRole(c.Role, c.OldPerson); restoreErr != nil {
					return fmt.Errorf("%v (and failed to restore %s: %w)", err, c.OldPerson.Name, restoreErr)
				}
			}
			return err
		}
	}
	return nil
}

// Undo is the exact inverse of Execute.
func (c *EditAssignmentCommand) Undo() error {
	if c.NewPerson != nil {
		if err := c.Event.UnassignRole(c.Role, c.NewPerson); err != nil {
			return err
		}
	}
	if c.OldPerson != nil {
		if err := c.Event.AssignRole(c.Role, c.OldPerson); err != nil {
			if c.NewPerson != nil {
				if restoreErr := c.Event.AssignRole(c.Role, c.NewPerson); restoreErr != nil {
					return fmt.Errorf("%v (and failed to restore %s: %w)", err, c.NewPerson.Name, restoreErr)
				}
			}
			return err
		}
	}
	return nil
}

// Describe renders the edit for logs and prompts, e.g.
// "KEYS on 2025-04-06: Gee -> Dave".
func (c *EditAssignmentCommand) Describe() string {
	oldName := "(open)"
	if c.OldPerson != nil {
		oldName = c.OldPerson.Name
	}
	newName := "(open)"
	if c.NewPerson != nil {
		newName = c.NewPerson.Name
	}
	return fmt.Sprintf("%s on %s: %s -> %s", c.Role, dates.FormatDate(c.Event.Date), oldName, newName)
}

// ScheduleEditor applies assignment edits with undo and redo. A fresh edit
// discards any pending redos, like every other editor.
type ScheduleEditor struct {
	undoStack []*EditAssignmentCommand
	redoStack []*EditAssignmentCommand
}

// NewScheduleEditor creates an editor with empty history.
func NewScheduleEditor() *ScheduleEditor {
	return &ScheduleEditor{}
}

// Apply executes the edit and records it for undo.
func (e *ScheduleEditor) Apply(cmd *EditAssignmentCommand) error {
	if err := cmd.Execute(); err != nil {
		return err
	}
	e.undoStack = append(e.undoStack, cmd)
	e.redoStack = nil
	return nil
}

// Undo reverts the most recent edit and returns it.
func (e *ScheduleEditor) Undo() (*EditAssignmentCommand, error) {
	if len(e.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}
	cmd := e.undoStack[len(e.undoStack)-1]
	if err := cmd.Undo(); err != nil {
		return nil, err
	}
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, cmd)
	return cmd, nil
}

// Redo reapplies the most recently undone edit and returns it.
func (e *ScheduleEditor) Redo() (*EditAssignmentCommand, error) {
	if len(e.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}
	cmd := e.redoStack[len(e.redoStack)-1]
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, cmd)
	return cmd, nil
}

// CanUndo reports whether an edit is available to undo.
func (e *ScheduleEditor) CanUndo() bool {
	return len(e.undoStack) > 0
}

// CanRedo reports whether an undone edit is available to redo.
func (e *ScheduleEditor) CanRedo() bool {
	return len(e.redoStack) > 0
}
