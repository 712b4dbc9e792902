package model

import "time"

// Preacher is a guest or rostered preacher with their booked dates and the
// person supporting graphics for them. Immutable after load.
type Preacher struct {
	Name            string
	GraphicsSupport string
	Dates           []time.Time
}

// NewPreacher creates a preacher record.
func NewPreacher(name, graphicsSupport string, dates []time.Time) *Preacher {
	return &Preacher{
		Name:            name,
		GraphicsSupport: graphicsSupport,
		Dates:           dates,
	}
}

// IsPreachingOn reports whether the preacher is booked on the given date.
func (p *Preacher) IsPreachingOn(d time.Time) bool {
	return containsDate(p.Dates, d)
}
