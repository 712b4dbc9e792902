package scheduler

import (
	"fmt"
	"time"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
)

// Event is one service date with its role assignments. Every known role is
// present in Roles; an empty string means the slot is unassigned.
type Event struct {
	Date      time.Time
	Team      []*model.Person
	Preachers []*model.Preacher
	Roles     map[model.Role]string
}

// NewEvent creates an event with every role unassigned.
func NewEvent(date time.Time, team []*model.Person, preachers []*model.Preacher) *Event {
	roles := make(map[model.Role]string, len(model.AllRoles()))
	for _, r := range model.AllRoles() {
		roles[r] = ""
	}
	return &Event{
		Date:      date,
		Team:      team,
		Preachers: preachers,
		Roles:     roles,
	}
}

// AssignRole fills a role slot with the person and records the assignment on
// their history. Filling an occupied slot is a caller error.
func (e *Event) AssignRole(role model.Role, person *model.Person) error {
	if _, ok := e.Roles[role]; !ok {
		return fmt.Errorf("%w: %q", model.ErrInvalidRole, role)
	}
	if current := e.Roles[role]; current != "" {
		return fmt.Errorf("%w: %s on %s is taken by %s",
			model.ErrRoleOccupied, role, e.Date.Format("2006-01-02"), current)
	}
	if _, ok := e.PersonFor(person.Name); !ok {
		return fmt.Errorf("%w: %s", model.ErrPersonNotInTeam, person.Name)
	}

	e.Roles[role] = person.Name
	person.AssignEvent(e.Date, role)
	return nil
}

// UnassignRole clears a role slot and rolls the assignment back off the
// person's history.
func (e *Event) UnassignRole(role model.Role, person *model.Person) error {
	if _, ok := e.Roles[role]; !ok {
		return fmt.Errorf("%w: %q", model.ErrInvalidRole, role)
	}
	if e.Roles[role] != person.Name {
		return fmt.Errorf("%w: %s does not hold %s on %s",
			model.ErrRoleNotAssigned, person.Name, role, e.Date.Format("2006-01-02"))
	}

	if err := person.UnassignEvent(e.Date, role); err != nil {
		return err
	}
	e.Roles[role] = ""
	return nil
}

// Assignee returns the name filling a role, if any.
func (e *Event) Assignee(role model.Role) (string, bool) {
	name := e.Roles[role]
	return name, name != ""
}

// AssignedRoles returns the filled roles in schedule display order.
func (e *Event) AssignedRoles() []model.Role {
	var roles []model.Role
	for _, r := range model.ScheduleOrder() {
		if e.Roles[r] != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// UnassignedRoles returns the open roles in schedule display order.
func (e *Event) UnassignedRoles() []model.Role {
	var roles []model.Role
	for _, r := range model.ScheduleOrder() {
		if e.Roles[r] == "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// Preacher returns the preacher booked on this event's date, recomputed on
// every call.
func (e *Event) Preacher() *model.Preacher {
	for _, p := range e.Preachers {
		if p.IsPreachingOn(e.Date) {
			return p
		}
	}
	return nil
}

// UnassignedNames returns team members filling no role slot on this event,
// in team order.
func (e *Event) UnassignedNames() []string {
	var names []string
	for _, p := range e.Team {
		if !e.HasPersonAssigned(p.Name) {
			names = append(names, p.Name)
		}
	}
	return names
}

// PersonFor looks a team member up by name.
func (e *Event) PersonFor(name string) (*model.Person, bool) {
	for _, p := range e.Team {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// HasPersonAssigned reports whether the person already fills any role slot.
func (e *Event) HasPersonAssigned(name string) bool {
	for _, assignee := range e.Roles {
		if assignee != "" && assignee == name {
			return true
		}
	}
	return false
}

// IsAssignableIfNeeded reports whether the person could stand in for a role
// if the usual rotation limits were waived: not on leave, capable, and
// neither blocked out nor preaching that day. Used for displaying alternates
// next to unassigned slots and for vetting manual edits.
func (e *Event) IsAssignableIfNeeded(role model.Role, person *model.Person) bool {
	return !person.OnLeave &&
		person.HasRole(role) &&
		!person.IsBlockedOut(e.Date) &&
		!person.IsPreachingOn(e.Date)
}
