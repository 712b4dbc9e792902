package scheduler

import (
	"fmt"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
)

// ConsecutiveAssignmentLimitRule caps how often a person can serve any role
// (or preach) inside a rolling window of `limit` weeks ending on the event
// date, both ends inclusive.
type ConsecutiveAssignmentLimitRule struct {
	limit int
}

func NewConsecutiveAssignmentLimitRule(limit int) (*ConsecutiveAssignmentLimitRule, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidLimit, limit)
	}
	return &ConsecutiveAssignmentLimitRule{limit: limit}, nil
}

func (r *ConsecutiveAssignmentLimitRule) Name() string {
	return "ConsecutiveAssignmentLimit"
}

func (r *ConsecutiveAssignmentLimitRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return !model.HasExceededConsecutiveAssignments(
		person.AssignedDates, person.PreachingDates, event.Date, r.limit)
}

// ConsecutiveRoleAssignmentLimitRule caps repeat assignments to one specific
// role inside a rolling window of `limit` weeks ending on the event date.
type ConsecutiveRoleAssignmentLimitRule struct {
	limit int
}

func NewConsecutiveRoleAssignmentLimitRule(limit int) (*ConsecutiveRoleAssignmentLimitRule, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", model.ErrInvalidLimit, limit)
	}
	return &ConsecutiveRoleAssignmentLimitRule{limit: limit}, nil
}

func (r *ConsecutiveRoleAssignmentLimitRule) Name() string {
	return "ConsecutiveRoleAssignmentLimit"
}

func (r *ConsecutiveRoleAssignmentLimitRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return !model.HasExceededConsecutiveAssignments(
		person.RoleAssignedDates[role], nil, event.Date, r.limit)
}
