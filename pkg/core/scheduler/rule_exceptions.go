package scheduler

import (
	"time"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
)

// The rules in this file encode congregation-specific policies. Each is a
// generic constructor parameterized with names, roles, and dates from
// configuration; name matching is exact and case-sensitive. New policies are
// added by appending instances, never by editing an existing rule.

// PreacherRequirementRule restricts one person to a role only on dates when
// a specific preacher is up. With no preacher resolved for the event, the
// person stays ineligible for that role.
type PreacherRequirementRule struct {
	person   string
	role     model.Role
	preacher string
	name     string
}

func NewPreacherRequirementRule(person string, role model.Role, preacher string) *PreacherRequirementRule {
	return &PreacherRequirementRule{
		person:   person,
		role:     role,
		preacher: preacher,
		name:     "PreacherRequirement(" + person + ")",
	}
}

func (r *PreacherRequirementRule) Name() string {
	return r.name
}

func (r *PreacherRequirementRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if person.Name != r.person || role != r.role {
		return true
	}
	preacher := event.Preacher()
	return preacher != nil && preacher.Name == r.preacher
}

// PreacherExclusionRule bars one person from a role on dates when a specific
// preacher is up. With no preacher resolved, the person stays eligible.
type PreacherExclusionRule struct {
	person   string
	role     model.Role
	preacher string
	name     string
}

func NewPreacherExclusionRule(person string, role model.Role, preacher string) *PreacherExclusionRule {
	return &PreacherExclusionRule{
		person:   person,
		role:     role,
		preacher: preacher,
		name:     "PreacherExclusion(" + person + ")",
	}
}

func (r *PreacherExclusionRule) Name() string {
	return r.name
}

func (r *PreacherExclusionRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if person.Name != r.person || role != r.role {
		return true
	}
	preacher := event.Preacher()
	return preacher == nil || preacher.Name != r.preacher
}

// ReservedRoleRule reserves a role for one person whenever another specific
// person holds a trigger role on the same event: everyone but the holder
// becomes ineligible for the reserved role. The trigger role must come
// before the reserved role in assignment priority order, otherwise the slot
// this rule reads is never resolved in time.
type ReservedRoleRule struct {
	role       model.Role
	holder     string
	whenRole   model.Role
	whenPerson string
	name       string
}

func NewReservedRoleRule(role model.Role, holder string, whenRole model.Role, whenPerson string) *ReservedRoleRule {
	return &ReservedRoleRule{
		role:       role,
		holder:     holder,
		whenRole:   whenRole,
		whenPerson: whenPerson,
		name:       "ReservedRole(" + holder + ")",
	}
}

func (r *ReservedRoleRule) Name() string {
	return r.name
}

func (r *ReservedRoleRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if role != r.role {
		return true
	}
	assignee, ok := event.Assignee(r.whenRole)
	if !ok || assignee != r.whenPerson {
		return true
	}
	return person.Name == r.holder
}

// MutualExclusionRule keeps two people off the same event entirely: once one
// of them holds any role, the other is ineligible for every role that day.
type MutualExclusionRule struct {
	first  string
	second string
	name   string
}

func NewMutualExclusionRule(first, second string) *MutualExclusionRule {
	return &MutualExclusionRule{
		first:  first,
		second: second,
		name:   "MutualExclusion(" + first + "/" + second + ")",
	}
}

func (r *MutualExclusionRule) Name() string {
	return r.name
}

func (r *MutualExclusionRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	switch person.Name {
	case r.first:
		return !event.HasPersonAssigned(r.second)
	case r.second:
		return !event.HasPersonAssigned(r.first)
	}
	return true
}

// RoleCutoverRule keeps one person out of a role until a fixed date: they
// are ineligible strictly before the cutover and eligible from it onward.
type RoleCutoverRule struct {
	person  string
	role    model.Role
	cutover time.Time
	name    string
}

func NewRoleCutoverRule(person string, role model.Role, cutover time.Time) *RoleCutoverRule {
	return &RoleCutoverRule{
		person:  person,
		role:    role,
		cutover: cutover,
		name:    "RoleCutover(" + person + ")",
	}
}

func (r *RoleCutoverRule) Name() string {
	return r.name
}

func (r *RoleCutoverRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if person.Name != r.person || role != r.role {
		return true
	}
	return !event.Date.Before(r.cutover)
}
