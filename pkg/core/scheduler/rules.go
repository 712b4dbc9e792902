package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// Rule is a single eligibility condition over a (person, role, event)
// combination. A rule that does not apply to the given person or role must
// return true: absence of a constraint is not a violation.
type Rule interface {
	// Name identifies the rule in logs and failure reports.
	Name() string

	// IsEligible reports whether the person may take the role on the event.
	IsEligible(person *model.Person, role model.Role, event *Event) bool
}

// EligibilityChecker evaluates an ordered rule list with short-circuit AND
// semantics. Order matters for rules that read sibling role slots on the
// same event: their trigger role must already be resolved when they run.
type EligibilityChecker struct {
	rules []Rule
}

// NewEligibilityChecker creates a checker over the given rules, evaluated in
// order.
func NewEligibilityChecker(rules ...Rule) *EligibilityChecker {
	return &EligibilityChecker{rules: rules}
}

// IsEligible reports whether every rule passes, stopping at the first
// failure.
func (c *EligibilityChecker) IsEligible(person *model.Person, role model.Role, event *Event) bool {
	for _, rule := range c.rules {
		if !rule.IsEligible(person, role, event) {
			return false
		}
	}
	return true
}

// FailingRule returns the name of the first rule that disqualifies the
// person, for debug logging. The second result is false when every rule
// passes.
func (c *EligibilityChecker) FailingRule(person *model.Person, role model.Role, event *Event) (string, bool) {
	for _, rule := range c.rules {
		if !rule.IsEligible(person, role, event) {
			return rule.Name(), true
		}
	}
	return "", false
}

// Rules returns the configured rule list in evaluation order.
func (c *EligibilityChecker) Rules() []Rule {
	return c.rules
}
