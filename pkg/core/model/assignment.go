package model

import "time"

// HasExceededConsecutiveAssignments reports whether the combined serving and
// preaching dates reach the limit within the window of `limit` weeks ending
// on referenceDate, both ends inclusive. A hit exactly `limit` weeks before
// the reference date still counts against the cap.
func HasExceededConsecutiveAssignments(assignedDates, preachingDates []time.Time, referenceDate time.Time, limit int) bool {
	windowStart := referenceDate.AddDate(0, 0, -7*limit)

	count := 0
	for _, d := range assignedDates {
		if withinWindow(d, windowStart, referenceDate) {
			count++
		}
	}
	for _, d := range preachingDates {
		if withinWindow(d, windowStart, referenceDate) {
			count++
		}
	}
	return count >= limit
}

func withinWindow(d, start, end time.Time) bool {
	if d.Before(start) && !sameDay(d, start) {
		return false
	}
	if d.After(end) && !sameDay(d, end) {
		return false
	}
	return true
}
