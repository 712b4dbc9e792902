package model

import "errors"

var (
	// ErrInvalidRole is returned when a role tag is not part of the known set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrRoleOccupied is returned when assigning a role that already has an assignee.
	ErrRoleOccupied = errors.New("role already assigned")

	// ErrRoleNotAssigned is returned when unassigning a role/person pair that was never assigned.
	ErrRoleNotAssigned = errors.New("role not assigned to person")

	// ErrPersonNotInTeam is returned when assigning someone outside the event's team snapshot.
	ErrPersonNotInTeam = errors.New("person not in team")

	// ErrInvalidLimit is returned when a fatigue rule is constructed with a non-positive limit.
	ErrInvalidLimit = errors.New("assignment limit must be positive")

	// ErrNoPreachingDates is returned when a preaching date range is requested with no dates loaded.
	ErrNoPreachingDates = errors.New("no preaching dates available")

	// ErrNoEventDates is returned when a schedule is requested for a range with no event dates.
	ErrNoEventDates = errors.New("no event dates in range")
)
