package model

import (
	"fmt"
	"time"
)

// Person is a team member together with their availability and the
// assignment history accumulated while a schedule is being built.
type Person struct {
	Name           string
	Roles          []Role
	BlockoutDates  []time.Time
	PreachingDates []time.Time
	TeachingDates  []time.Time
	OnLeave        bool

	// AssignedDates is the append-only history of every date this person
	// was assigned any role during the current build.
	AssignedDates []time.Time

	// LastAssignedDates maps a role to the most recent assignment date for
	// that role. Absence of a key means never assigned.
	LastAssignedDates map[Role]time.Time

	// RoleAssignedDates maps a role to every assignment date for that role.
	RoleAssignedDates map[Role][]time.Time
}

// NewPerson creates a person with empty history.
func NewPerson(name string, roles []Role) *Person {
	return &Person{
		Name:              name,
		Roles:             roles,
		LastAssignedDates: make(map[Role]time.Time),
		RoleAssignedDates: make(map[Role][]time.Time),
	}
}

// AssignEvent records an assignment to role on eventDate across all three
// history structures.
func (p *Person) AssignEvent(eventDate time.Time, role Role) {
	if p.LastAssignedDates == nil {
		p.LastAssignedDates = make(map[Role]time.Time)
	}
	if p.RoleAssignedDates == nil {
		p.RoleAssignedDates = make(map[Role][]time.Time)
	}

	p.AssignedDates = append(p.AssignedDates, eventDate)
	p.LastAssignedDates[role] = eventDate
	p.RoleAssignedDates[role] = append(p.RoleAssignedDates[role], eventDate)
}

// UnassignEvent is the exact inverse of AssignEvent: it removes one
// occurrence of eventDate from each history structure and recomputes the
// last-assigned date for the role from the remaining history.
func (p *Person) UnassignEvent(eventDate time.Time, role Role) error {
	roleDates := p.RoleAssignedDates[role]
	idx := indexOfDate(roleDates, eventDate)
	if idx < 0 {
		return fmt.Errorf("%w: %s was not assigned %s on %s",
			ErrRoleNotAssigned, p.Name, role, eventDate.Format("2006-01-02"))
	}

	p.RoleAssignedDates[role] = append(roleDates[:idx], roleDates[idx+1:]...)

	if i := indexOfDate(p.AssignedDates, eventDate); i >= 0 {
		p.AssignedDates = append(p.AssignedDates[:i], p.AssignedDates[i+1:]...)
	}

	// The removed date may not have been the latest, so recompute the max
	// rather than just deleting the entry.
	remaining := p.RoleAssignedDates[role]
	if len(remaining) == 0 {
		delete(p.LastAssignedDates, role)
		return nil
	}
	latest := remaining[0]
	for _, d := range remaining[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	p.LastAssignedDates[role] = latest
	return nil
}

// LastAssignedDate returns the most recent assignment date for role.
func (p *Person) LastAssignedDate(role Role) (time.Time, bool) {
	d, ok := p.LastAssignedDates[role]
	return d, ok
}

// NextPreachingDate returns this person's first preaching date on or after
// the reference date.
func (p *Person) NextPreachingDate(reference time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, d := range p.PreachingDates {
		if d.Before(reference) {
			continue
		}
		if !found || d.Before(next) {
			next = d
			found = true
		}
	}
	return next, found
}

// HasRole reports whether the person is capable of filling role.
func (p *Person) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p *Person) IsBlockedOut(d time.Time) bool {
	return containsDate(p.BlockoutDates, d)
}

func (p *Person) IsPreachingOn(d time.Time) bool {
	return containsDate(p.PreachingDates, d)
}

func (p *Person) IsTeachingOn(d time.Time) bool {
	return containsDate(p.TeachingDates, d)
}

// Clone returns an independent copy of the person, including history, so a
// schedule build cannot leak assignments into the caller's team.
func (p *Person) Clone() *Person {
	c := &Person{
		Name:              p.Name,
		Roles:             append([]Role(nil), p.Roles...),
		BlockoutDates:     append([]time.Time(nil), p.BlockoutDates...),
		PreachingDates:    append([]time.Time(nil), p.PreachingDates...),
		TeachingDates:     append([]time.Time(nil), p.TeachingDates...),
		OnLeave:           p.OnLeave,
		AssignedDates:     append([]time.Time(nil), p.AssignedDates...),
		LastAssignedDates: make(map[Role]time.Time, len(p.LastAssignedDates)),
		RoleAssignedDates: make(map[Role][]time.Time, len(p.RoleAssignedDates)),
	}
	for role, d := range p.LastAssignedDates {
		c.LastAssignedDates[role] = d
	}
	for role, dates := range p.RoleAssignedDates {
		c.RoleAssignedDates[role] = append([]time.Time(nil), dates...)
	}
	return c
}

// CloneTeam deep-copies a whole team.
func CloneTeam(team []*Person) []*Person {
	copies := make([]*Person, len(team))
	for i, p := range team {
		copies[i] = p.Clone()
	}
	return copies
}

func indexOfDate(dates []time.Time, d time.Time) int {
	for i, x := range dates {
		if sameDay(x, d) {
			return i
		}
	}
	return -1
}

func containsDate(dates []time.Time, d time.Time) bool {
	return indexOfDate(dates, d) >= 0
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
