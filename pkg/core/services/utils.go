package services

import (
	"fmt"
	"time"

	"github.com/kmdeguzman/worship-scheduler/pkg/core/model"
	"github.com/kmdeguzman/worship-scheduler/pkg/core/scheduler"
)

// PreachingDateRange returns the earliest and latest preaching dates across
// all preachers. Scheduling outside this window is pointless because no
// preacher is booked, so callers clamp their requested range to it.
func PreachingDateRange(preachers []*model.Preacher) (time.Time, time.Time, error) {
	var start, end time.Time
	found := false

	for _, preacher := range preachers {
		for _, d := range preacher.Dates {
			if !found {
				start, end = d, d
				found = true
				continue
			}
			if d.Before(start) {
				start = d
			}
			if d.After(end) {
				end = d
			}
		}
	}

	if !found {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: add preaching dates to the roster first", model.ErrNoPreachingDates)
	}
	return start, end, nil
}

// AdjustDatesWithinRange clamps start and end to [rangeStart, rangeEnd]. A
// zero start or end falls back to the corresponding bound. The flag reports
// whether a non-zero input had to move.
func AdjustDatesWithinRange(start, end, rangeStart, rangeEnd time.Time) (time.Time, time.Time, bool) {
	adjusted := false

	if start.IsZero() {
		start = rangeStart
	} else if start.Before(rangeStart) {
		start = rangeStart
		adjusted = true
	}

	if end.IsZero() {
		end = rangeEnd
	} else if end.After(rangeEnd) {
		end = rangeEnd
		adjusted = true
	}

	return start, end, adjusted
}

// IsWithinRange reports whether d falls inside [start, end], both inclusive.
func IsWithinRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// countUnassignedSlots totals the open role slots across all events.
func countUnassignedSlots(events []*scheduler.Event) int {
	count := 0
	for _, event := range events {
		count += len(event.UnassignedRoles())
	}
	return count
}
