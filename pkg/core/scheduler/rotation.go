package scheduler

import "github.com/kmdeguzman/worship-scheduler/pkg/core/model"

// RotationSelector walks an ordered rotation of names round-robin, skipping
// whoever is ineligible this week without costing them their turn. The
// cursor only advances when a pick succeeds.
type RotationSelector struct {
	rotation []string
	index    int
}

// NewRotationSelector creates a selector over the rotation names in priority
// order. An empty rotation never selects anyone.
func NewRotationSelector(rotation []string) *RotationSelector {
	return &RotationSelector{rotation: rotation}
}

// Next returns the first person from the rotation, scanning circularly from
// the cursor, whose name appears in eligible. On a match the cursor moves to
// just past the matched position. With no match, an empty rotation, or no
// eligible people, Next returns nil and the cursor stays put.
func (s *RotationSelector) Next(eligible []*model.Person) *model.Person {
	if len(s.rotation) == 0 || len(eligible) == 0 {
		return nil
	}

	for step := 0; step < len(s.rotation); step++ {
		pos := (s.index + step) % len(s.rotation)
		name := s.rotation[pos]
		for _, person := range eligible {
			if person.Name == name {
				s.index = (pos + 1) % len(s.rotation)
				return person
			}
		}
	}
	return nil
}

// Reset rewinds the cursor to the start of the rotation.
func (s *RotationSelector) Reset() {
	s.index = 0
}

// Rotation returns the configured rotation names.
func (s *RotationSelector) Rotation() []string {
	return s.rotation
}
