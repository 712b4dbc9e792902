package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// RuleParams carries the tunable inputs for the standard rule list.
type RuleParams struct {
	// ConsecutiveLimit caps overall serving (any role or preaching) in a
	// rolling window of the same number of weeks.
	ConsecutiveLimit int

	// RoleLimit caps repeat assignments to one role in a rolling window of
	// the same number of weeks.
	RoleLimit int

	// RoleWindows maps a role to its cooldown in weeks. Nil selects the
	// default windows.
	RoleWindows map[model.Role]int

	// PreachingBufferWeeks is how close to their next preaching date someone
	// may still lead worship.
	PreachingBufferWeeks int

	// SpecialRules are the congregation-specific exceptions, appended after
	// the standard rules in the order given.
	SpecialRules []Rule
}

// DefaultRuleParams returns the production limits.
func DefaultRuleParams() RuleParams {
	return RuleParams{
		ConsecutiveLimit:     3,
		RoleLimit:            2,
		PreachingBufferWeeks: 1,
	}
}

// BuildRules assembles the ordered eligibility rule list. The order is fixed:
// cheap availability checks first, then capability, then the fatigue and
// cooldown windows, then worship-leader constraints, and the special rules
// last. Special rules that read sibling role slots rely on the standard
// rules having filtered candidates before them.
//
// Returns an error when a fatigue limit is non-positive.
func BuildRules(params RuleParams) ([]Rule, error) {
	consecutive, err := NewConsecutiveAssignmentLimitRule(params.ConsecutiveLimit)
	if err != nil {
		return nil, err
	}
	perRole, err := NewConsecutiveRoleAssignmentLimitRule(params.RoleLimit)
	if err != nil {
		return nil, err
	}

	rules := []Rule{
		NewOnLeaveRule(),
		NewBlockoutDateRule(),
		NewPreachingDateRule(),
		NewRoleCapabilityRule(),
		NewWorshipLeaderTeachingRule(),
		consecutive,
		perRole,
		NewRoleTimeWindowRule(params.RoleWindows),
		NewWorshipLeaderPreachingConflictRule(params.PreachingBufferWeeks),
	}
	rules = append(rules, params.SpecialRules...)
	return rules, nil
}
