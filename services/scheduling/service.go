package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taxline/models"
)

// The event summary encodes ownership as "<customer_id>, <name>" and
// every list/cancel/reschedule relies on exact, case-sensitive prefix
// matching against that convention. Do not change the format without
// migrating live calendar data.
const summarySuffix = ", Meeting with tax advisor"

// OwnershipPrefix is the summary prefix tagging a booking as belonging
// to the given identity.
func OwnershipPrefix(ident *models.VerifiedIdentity) string {
	return ident.CustomerID + ", " + ident.Name
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Location)
	}
	return time.Now().In(s.Location)
}

func (s *DefaultSchedulingService) parseDateTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(value), s.Location)
	if err != nil {
		return time.Time{}, newError(CodeParseError,
			fmt.Sprintf("invalid datetime %q - use YYYY-MM-DD HH:MM (24-hour clock)", value))
	}
	return t, nil
}

// dayEvents fetches every event on the calendar day containing slot.
// Re-queried on every operation; the calendar is the system of record.
func (s *DefaultSchedulingService) dayEvents(ctx context.Context, slot time.Time) ([]models.CalendarEvent, error) {
	day := slot.In(s.Location)
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.Location)
	return s.Calendar.ListEvents(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
}

// ownedFutureEvents returns the caller's upcoming bookings: all future
// events whose summary starts with the session identity's ownership
// prefix, ordered by start time.
func (s *DefaultSchedulingService) ownedFutureEvents(ctx context.Context, ident *models.VerifiedIdentity) ([]models.CalendarEvent, error) {
	events, err := s.Calendar.ListEvents(ctx, s.now(), time.Time{})
	if err != nil {
		return nil, err
	}
	prefix := OwnershipPrefix(ident)
	owned := make([]models.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if strings.HasPrefix(ev.Summary, prefix) {
			owned = append(owned, ev)
		}
	}
	return owned, nil
}

func verifiedIdentity(sess *models.Session) (*models.VerifiedIdentity, error) {
	if sess == nil || sess.Verified == nil {
		return nil, newError(CodeNotVerified, "you are not verified - please verify before managing bookings")
	}
	return sess.Verified, nil
}

// CreateBooking validates the requested time, checks the day's slots
// for conflicts and inserts a 20-minute event tagged with the caller's
// identity. There is no lock between the conflict check and the
// insert; two simultaneous requests for the same slot can both pass
// the check (see DESIGN.md).
func (s *DefaultSchedulingService) CreateBooking(ctx context.Context, sess *models.Session, dateTime, topic string) (*models.BookingConfirmation, error) {
	ident, err := verifiedIdentity(sess)
	if err != nil {
		return nil, err
	}

	candidate, err := s.parseDateTime(dateTime)
	if err != nil {
		return nil, err
	}
	slot, err := ValidateAndQuantize(candidate, s.now())
	if err != nil {
		return nil, err
	}

	events, err := s.dayEvents(ctx, slot)
	if err != nil {
		return nil, err
	}
	if !IsFree(events, s.Location, slot, "") {
		return nil, newError(CodeSlotTaken, "that slot is already taken - please choose another time")
	}

	end := slot.Add(MeetingDuration)
	created, err := s.Calendar.InsertEvent(ctx, models.CalendarEvent{
		Summary:     OwnershipPrefix(ident) + summarySuffix,
		Description: topic,
		Start:       slot,
		End:         end,
	})
	if err != nil {
		return nil, err
	}

	return &models.BookingConfirmation{
		Booking: models.Booking{
			EventID: created.ID,
			Start:   slot,
			End:     end,
			Topic:   topic,
		},
		Message:       fmt.Sprintf("Booking confirmed for %s!", slot.Format("2006-01-02 03:04 PM")),
		InviteDataURI: InviteDataURI(slot, end, topic),
	}, nil
}

// ListBookings returns the caller's future bookings ordered by start
// time. Zero bookings is a valid result, never an error; callers
// render the explicit empty state.
func (s *DefaultSchedulingService) ListBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error) {
	ident, err := verifiedIdentity(sess)
	if err != nil {
		return nil, err
	}
	events, err := s.ownedFutureEvents(ctx, ident)
	if err != nil {
		return nil, err
	}

	bookings := make([]models.Booking, 0, len(events))
	for _, ev := range events {
		bookings = append(bookings, models.Booking{
			EventID: ev.ID,
			Start:   ev.Start.In(s.Location),
			End:     ev.End.In(s.Location),
			Topic:   ev.Description,
		})
	}
	return bookings, nil
}

// resolveBooking finds the caller's future booking whose start equals
// the parsed original datetime exactly, after timezone normalization
// and second truncation. Exact match only; no nearest-slot fuzzing.
func (s *DefaultSchedulingService) resolveBooking(ctx context.Context, ident *models.VerifiedIdentity, originalDateTime string) (*models.CalendarEvent, error) {
	original, err := s.parseDateTime(originalDateTime)
	if err != nil {
		return nil, err
	}
	events, err := s.ownedFutureEvents(ctx, ident)
	if err != nil {
		return nil, err
	}
	for i, ev := range events {
		if ev.AllDay {
			continue
		}
		start := ev.Start.In(s.Location)
		start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), 0, 0, s.Location)
		if start.Equal(original) {
			return &events[i], nil
		}
	}
	return nil, newError(CodeBookingNotFound, fmt.Sprintf("no booking found at %s", strings.TrimSpace(originalDateTime)))
}

// CancelBooking deletes the caller's booking at originalDateTime.
func (s *DefaultSchedulingService) CancelBooking(ctx context.Context, sess *models.Session, originalDateTime string) (*models.Booking, error) {
	ident, err := verifiedIdentity(sess)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveBooking(ctx, ident, originalDateTime)
	if err != nil {
		return nil, err
	}
	if err := s.Calendar.DeleteEvent(ctx, target.ID); err != nil {
		return nil, err
	}
	return &models.Booking{
		EventID: target.ID,
		Start:   target.Start.In(s.Location),
		End:     target.End.In(s.Location),
		Topic:   target.Description,
	}, nil
}

// RescheduleBooking moves the caller's booking at originalDateTime to
// newDateTime. The new time gets the weekday, quantization and
// business-hours rules but, unlike create, no past or lookahead
// checks; that asymmetry is shipped behavior, kept deliberately.
func (s *DefaultSchedulingService) RescheduleBooking(ctx context.Context, sess *models.Session, originalDateTime, newDateTime string) (*models.Booking, error) {
	ident, err := verifiedIdentity(sess)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveBooking(ctx, ident, originalDateTime)
	if err != nil {
		return nil, err
	}

	candidate, err := s.parseDateTime(newDateTime)
	if err != nil {
		return nil, err
	}
	if isWeekend(candidate) {
		return nil, newError(CodeWeekendRejected, "bookings are only available Monday to Friday")
	}
	slot := Quantize(candidate)
	if !withinBusinessHours(slot) {
		return nil, newError(CodeOutsideBusinessHours, "business hours are 09:00-16:00 in 30-minute increments")
	}

	events, err := s.dayEvents(ctx, slot)
	if err != nil {
		return nil, err
	}
	if !IsFree(events, s.Location, slot, target.ID) {
		return nil, newError(CodeSlotTaken, "there is already a booking at that time - please try another slot")
	}

	end := slot.Add(MeetingDuration)
	patched, err := s.Calendar.PatchEvent(ctx, target.ID, slot, end)
	if err != nil {
		return nil, err
	}
	return &models.Booking{
		EventID: patched.ID,
		Start:   slot,
		End:     end,
		Topic:   patched.Description,
	}, nil
}
