package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// RoleCapabilityRule disqualifies people from roles they cannot fill.
type RoleCapabilityRule struct{}

func NewRoleCapabilityRule() *RoleCapabilityRule {
	return &RoleCapabilityRule{}
}

func (r *RoleCapabilityRule) Name() string {
	return "RoleCapability"
}

func (r *RoleCapabilityRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return person.HasRole(role)
}

// OnLeaveRule disqualifies anyone currently on leave from every role.
type OnLeaveRule struct{}

func NewOnLeaveRule() *OnLeaveRule {
	return &OnLeaveRule{}
}

func (r *OnLeaveRule) Name() string {
	return "OnLeave"
}

func (r *OnLeaveRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return !person.OnLeave
}

// BlockoutDateRule disqualifies people on dates they have blocked out.
type BlockoutDateRule struct{}

func NewBlockoutDateRule() *BlockoutDateRule {
	return &BlockoutDateRule{}
}

func (r *BlockoutDateRule) Name() string {
	return "BlockoutDate"
}

func (r *BlockoutDateRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return !person.IsBlockedOut(event.Date)
}

// PreachingDateRule disqualifies the preacher of the day from serving a role
// on the same date.
type PreachingDateRule struct{}

func NewPreachingDateRule() *PreachingDateRule {
	return &PreachingDateRule{}
}

func (r *PreachingDateRule) Name() string {
	return "PreachingDate"
}

func (r *PreachingDateRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	return !person.IsPreachingOn(event.Date)
}
