package scheduling

import "time"

// Business rules for consultation slots. Slots are quantized to
// half-hour boundaries in the business timezone; a consultation runs
// 20 minutes, so 16:00 is the last bookable start of the day.
const (
	BusinessOpenHour      = 9
	BusinessLastStartHour = 16
	MeetingDuration       = 20 * time.Minute
	MaxLookaheadDays      = 365

	dateTimeLayout = "2006-01-02 15:04"
)

// Quantize floors t to its half-hour slot boundary: minute >= 30
// becomes :30, anything earlier becomes :00. Seconds and sub-second
// precision are dropped. Floor, not round-to-nearest.
func Quantize(t time.Time) time.Time {
	minute := 0
	if t.Minute() >= 30 {
		minute = 30
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

func withinBusinessHours(t time.Time) bool {
	h := t.Hour()
	if h >= BusinessOpenHour && h < BusinessLastStartHour {
		return true
	}
	return h == BusinessLastStartHour && t.Minute() == 0
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ValidateAndQuantize applies the booking rules to a candidate instant
// and returns the normalized slot. Rules run in order: not in the
// past, within one year, weekday only, then quantization, then
// business hours on the quantized value. The past check runs before
// quantization, so an instant that quantizes backwards into the past
// is still accepted; that matches the shipped behavior and is left
// as-is.
func ValidateAndQuantize(candidate, now time.Time) (time.Time, error) {
	if candidate.Before(now) {
		return time.Time{}, newError(CodeInPast, "cannot book in the past")
	}
	if candidate.After(now.AddDate(0, 0, MaxLookaheadDays)) {
		return time.Time{}, newError(CodeTooFarOut, "please choose a date within one year")
	}
	if isWeekend(candidate) {
		return time.Time{}, newError(CodeWeekendRejected, "bookings are only available Monday to Friday")
	}

	slot := Quantize(candidate)
	if !withinBusinessHours(slot) {
		return time.Time{}, newError(CodeOutsideBusinessHours, "business hours are 09:00-16:00 in 30-minute increments")
	}
	return slot, nil
}
