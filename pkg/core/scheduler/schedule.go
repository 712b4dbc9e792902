package scheduler

import (
	"math/rand"
	"time"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
)

// Schedule builds role assignments for a run of event dates. It is a single
// greedy pass: each date is resolved completely before the next, and within
// a date each role is resolved in priority order with no backtracking.
type Schedule struct {
	team       []*model.Person
	preachers  []*model.Preacher
	eventDates []time.Time
	selector   *RotationSelector
	checker    *EligibilityChecker
	rng        *rand.Rand
}

// Option configures a Schedule.
type Option func(*Schedule)

// WithRand injects the random source used for tie-breaking among eligible
// candidates, so runs can be made reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Schedule) {
		s.rng = rng
	}
}

// NewSchedule creates a schedule builder for the given team, preachers, and
// event dates. The selector drives the worship-leader rotation; the checker
// holds the full eligibility rule list.
func NewSchedule(
	team []*model.Person,
	preachers []*model.Preacher,
	eventDates []time.Time,
	selector *RotationSelector,
	checker *EligibilityChecker,
	opts ...Option,
) *Schedule {
	s := &Schedule{
		team:       team,
		preachers:  preachers,
		eventDates: eventDates,
		selector:   selector,
		checker:    checker,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build assigns roles for every event date and returns the events together
// with the team, whose members now carry the accumulated assignment
// history. An empty team short-circuits to no events. A role nobody
// qualifies for stays unassigned; that is an outcome, not an error.
func (s *Schedule) Build() ([]*Event, []*model.Person) {
	if len(s.team) == 0 {
		return []*Event{}, s.team
	}

	events := make([]*Event, 0, len(s.eventDates))
	for _, eventDate := range s.eventDates {
		event := NewEvent(eventDate, s.team, s.preachers)
		pool := append([]*model.Person(nil), s.team...)

		for _, role := range model.AllRoles() {
			person := s.pickFor(role, pool, event)
			if person == nil {
				continue
			}
			if err := event.AssignRole(role, person); err != nil {
				continue
			}
			pool = removePerson(pool, person)
		}

		events = append(events, event)
	}
	return events, s.team
}

// pickFor selects one eligible person for the role, or nil when nobody
// qualifies. The worship-leader role consults the rotation first and only
// falls back to a random pick when the rotation yields no one.
func (s *Schedule) pickFor(role model.Role, pool []*model.Person, event *Event) *model.Person {
	var eligible []*model.Person
	for _, person := range pool {
		if s.checker.IsEligible(person, role, event) {
			eligible = append(eligible, person)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	if role == model.RoleWorshipLeader && s.selector != nil {
		if person := s.selector.Next(eligible); person != nil {
			return person
		}
	}
	return eligible[s.rng.Intn(len(eligible))]
}

func removePerson(pool []*model.Person, person *model.Person) []*model.Person {
	for i, p := range pool {
		if p == person {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}
