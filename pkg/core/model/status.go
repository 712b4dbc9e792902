package model

import "time"

// PersonStatus describes what a team member is doing (or why they are
// unavailable) on a particular date.
type PersonStatus string

const (
	StatusOnLeave    PersonStatus = "ON-LEAVE"
	StatusBlockedOut PersonStatus = "BLOCKEDOUT"
	StatusAssigned   PersonStatus = "ASSIGNED"
	StatusPreaching  PersonStatus = "PREACHING"
	StatusBreak      PersonStatus = "BREAK"
	StatusTeaching   PersonStatus = "TEACHING"
	StatusUnassigned PersonStatus = "UNASSIGNED"
)

// StatusOn derives a person's status on checkDate. Leave dominates, then a
// concrete booking that day, then a forced break once the rolling serving
// window is full. consecutiveLimit is the same cap the scheduler enforces.
func StatusOn(p *Person, checkDate time.Time, consecutiveLimit int) PersonStatus {
	if p.OnLeave {
		return StatusOnLeave
	}
	if p.IsBlockedOut(checkDate) {
		return StatusBlockedOut
	}
	if containsDate(p.AssignedDates, checkDate) {
		return StatusAssigned
	}
	if p.IsPreachingOn(checkDate) {
		return StatusPreaching
	}
	if HasExceededConsecutiveAssignments(p.AssignedDates, p.PreachingDates, checkDate, consecutiveLimit) {
		return StatusBreak
	}
	if p.HasRole(RoleWorshipLeader) && p.IsTeachingOn(checkDate) {
		return StatusTeaching
	}
	return StatusUnassigned
}
