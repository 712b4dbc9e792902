package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// WorshipLeaderTeachingRule keeps a worship leader from leading on a Sunday
// they are teaching. Other roles are unaffected.
type WorshipLeaderTeachingRule struct{}

func NewWorshipLeaderTeachingRule() *WorshipLeaderTeachingRule {
	return &WorshipLeaderTeachingRule{}
}

func (r *WorshipLeaderTeachingRule) Name() string {
	return "WorshipLeaderTeaching"
}

func (r *WorshipLeaderTeachingRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if role != model.RoleWorshipLeader {
		return true
	}
	return !person.IsTeachingOn(event.Date)
}

// WorshipLeaderPreachingConflictRule keeps someone from leading worship when
// their next preaching date is within the buffer. Leading one Sunday and
// preaching the next leaves no preparation time.
type WorshipLeaderPreachingConflictRule struct {
	bufferWeeks int
}

// NewWorshipLeaderPreachingConflictRule creates the rule. A non-positive
// buffer falls back to one week.
func NewWorshipLeaderPreachingConflictRule(bufferWeeks int) *WorshipLeaderPreachingConflictRule {
	if bufferWeeks <= 0 {
		bufferWeeks = 1
	}
	return &WorshipLeaderPreachingConflictRule{bufferWeeks: bufferWeeks}
}

func (r *WorshipLeaderPreachingConflictRule) Name() string {
	return "WorshipLeaderPreachingConflict"
}

func (r *WorshipLeaderPreachingConflictRule) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	if role != model.RoleWorshipLeader {
		return true
	}

	next, ok := person.NextPreachingDate(event.Date)
	if !ok {
		return true
	}

	// Preaching exactly one buffer away still conflicts.
	return next.After(event.Date.AddDate(0, 0, 7*r.bufferWeeks))
}
