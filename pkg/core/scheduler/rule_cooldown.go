package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// RoleTimeWindowRule enforces a per-role cooldown: once assigned to a
// windowed role, a person stays ineligible for that role until strictly more
// than the window has elapsed. Exactly the window later is still too soon.
type RoleTimeWindowRule struct {
	windows map[model.Role]int
}

// DefaultRoleWindows returns the cooldown weeks per role. Roles without an
// entry have no cooldown.
func DefaultRoleWindows() map[model.Role]int {
	return map[model.Role]int{
		model.RoleWorshipLeader:       4,
		model.RoleSundaySchoolTeacher: 4,
		model.RoleEmcee:               2,
	}
}

// NewRoleTimeWindowRule creates the cooldown rule. A nil map selects the
// default windows.
func NewRoleTimeWindowRule(windows map[model.Role]int) *RoleTimeWindowRule {
	if windows == nil {
		windows = DefaultRoleWindows()
	}
	return &RoleTimeWindowRule{windows: windows}
}

func (r *RoleTimeWindowRule) Name() string {
	return "RoleTimeWindow"
}

func (r *RoleTimeWindowRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	weeks, windowed := r.windows[role]
	if !windowed {
		return true
	}

	last, assigned := person.LastAssignedDate(role)
	if !assigned {
		return true
	}

	// Strictly greater than the window: an assignment exactly `weeks`
	// weeks ago still blocks this date.
	return event.Date.After(last.AddDate(0, 0, 7*weeks))
}
