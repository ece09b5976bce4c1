package scheduling

import (
	"time"

	"taxline/models"
)

// occupiedTimes collects the start time-of-day of every timed event in
// the given day's events, normalized to loc with seconds truncated.
// Date-only (all-day) entries are skipped, as is the event with
// excludeID (the booking being rescheduled, when any).
func occupiedTimes(events []models.CalendarEvent, loc *time.Location, excludeID string) map[string]struct{} {
	occupied := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		if excludeID != "" && ev.ID == excludeID {
			continue
		}
		occupied[ev.Start.In(loc).Format("15:04")] = struct{}{}
	}
	return occupied
}

// IsFree reports whether the candidate slot's time-of-day is
// unoccupied among the given day's events. The comparison is
// time-of-day only; callers must pass events scoped to the candidate's
// calendar day (the day-scoped query keeps this correct).
func IsFree(events []models.CalendarEvent, loc *time.Location, candidate time.Time, excludeID string) bool {
	_, taken := occupiedTimes(events, loc, excludeID)[candidate.In(loc).Format("15:04")]
	return !taken
}
