package scheduling_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"taxline/models"
	"taxline/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendar is an in-memory CalendarRepository double.
type fakeCalendar struct {
	events  []models.CalendarEvent
	nextID  int
	listErr error
}

func (f *fakeCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CalendarEvent
	for _, ev := range f.events {
		if !ev.AllDay {
			if ev.Start.Before(timeMin) {
				continue
			}
			if !timeMax.IsZero() && !ev.Start.Before(timeMax) {
				continue
			}
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	f.nextID++
	event.ID = fmt.Sprintf("evt-%d", f.nextID)
	f.events = append(f.events, event)
	return &event, nil
}

func (f *fakeCalendar) PatchEvent(ctx context.Context, eventID string, start, end time.Time) (*models.CalendarEvent, error) {
	for i := range f.events {
		if f.events[i].ID == eventID {
			f.events[i].Start = start
			f.events[i].End = end
			ev := f.events[i]
			return &ev, nil
		}
	}
	return nil, scheduling.RemoteError("updating booking", fmt.Errorf("event %s not found", eventID))
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	for i := range f.events {
		if f.events[i].ID == eventID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return scheduling.RemoteError("cancelling booking", fmt.Errorf("event %s not found", eventID))
}

func newService(cal *fakeCalendar, loc *time.Location, now time.Time) *scheduling.DefaultSchedulingService {
	return &scheduling.DefaultSchedulingService{
		Calendar: cal,
		Location: loc,
		Now:      func() time.Time { return now },
	}
}

func verifiedSession() *models.Session {
	return &models.Session{
		ID:       "sess-1",
		Verified: &models.VerifiedIdentity{CustomerID: "abc123", Name: "Jane Doe"},
	}
}

func TestBookingLifecycle(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{}
	svc := newService(cal, loc, now)
	sess := verifiedSession()
	ctx := context.Background()

	conf, err := svc.CreateBooking(ctx, sess, "2025-05-19 12:00", "son's taxes")
	require.NoError(t, err)
	assert.True(t, conf.Booking.Start.Equal(at(loc, 2025, time.May, 19, 12, 0, 0)))
	assert.True(t, conf.Booking.End.Equal(at(loc, 2025, time.May, 19, 12, 20, 0)), "meetings run 20 minutes")
	assert.Equal(t, "son's taxes", conf.Booking.Topic)
	assert.Contains(t, conf.Message, "2025-05-19 12:00 PM")
	assert.True(t, strings.HasPrefix(conf.InviteDataURI, "data:text/calendar;base64,"))

	require.Len(t, cal.events, 1)
	assert.True(t, strings.HasPrefix(cal.events[0].Summary, "abc123, Jane Doe"))
	assert.Equal(t, "abc123, Jane Doe, Meeting with tax advisor", cal.events[0].Summary)

	bookings, err := svc.ListBookings(ctx, sess)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].Start.Equal(at(loc, 2025, time.May, 19, 12, 0, 0)))

	_, err = svc.CancelBooking(ctx, sess, "2025-05-19 12:00")
	require.NoError(t, err)
	assert.Empty(t, cal.events)

	bookings, err = svc.ListBookings(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, bookings, "empty list is a valid result, not an error")
}

func TestCreateBookingRequiresVerification(t *testing.T) {
	loc := vancouver(t)
	svc := newService(&fakeCalendar{}, loc, at(loc, 2025, time.May, 12, 8, 0, 0))
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, &models.Session{ID: "anon"}, "2025-05-19 12:00", "taxes")
	assert.True(t, scheduling.IsCode(err, scheduling.CodeNotVerified))

	_, err = svc.CreateBooking(ctx, nil, "2025-05-19 12:00", "taxes")
	assert.True(t, scheduling.IsCode(err, scheduling.CodeNotVerified))
}

func TestCreateBookingParseError(t *testing.T) {
	loc := vancouver(t)
	svc := newService(&fakeCalendar{}, loc, at(loc, 2025, time.May, 12, 8, 0, 0))

	_, err := svc.CreateBooking(context.Background(), verifiedSession(), "19 May 2025, noon", "taxes")
	require.True(t, scheduling.IsCode(err, scheduling.CodeParseError))
	assert.Contains(t, err.Error(), "YYYY-MM-DD HH:MM", "parse failures carry the usage hint")
}

func TestCreateBookingSlotConflicts(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{events: []models.CalendarEvent{{
		ID:      "other-1",
		Summary: "xyz789, John Roe, Meeting with tax advisor",
		Start:   at(loc, 2025, time.May, 19, 12, 0, 0),
		End:     at(loc, 2025, time.May, 19, 12, 20, 0),
	}}}
	svc := newService(cal, loc, now)
	sess := verifiedSession()
	ctx := context.Background()

	// Conflicts apply against every booking that day, not only the
	// caller's own.
	_, err := svc.CreateBooking(ctx, sess, "2025-05-19 12:00", "taxes")
	assert.True(t, scheduling.IsCode(err, scheduling.CodeSlotTaken))

	// A time that quantizes onto the occupied slot conflicts too.
	_, err = svc.CreateBooking(ctx, sess, "2025-05-19 12:15", "taxes")
	assert.True(t, scheduling.IsCode(err, scheduling.CodeSlotTaken))

	// Neighboring slot is fine.
	_, err = svc.CreateBooking(ctx, sess, "2025-05-19 12:30", "taxes")
	assert.NoError(t, err)

	// Once the conflicting booking is gone the slot opens up again.
	require.NoError(t, cal.DeleteEvent(ctx, "other-1"))
	_, err = svc.CreateBooking(ctx, sess, "2025-05-19 12:00", "taxes")
	assert.NoError(t, err)
}

func TestCreateBookingIgnoresAllDayEvents(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{events: []models.CalendarEvent{{ID: "holiday", Summary: "Office retreat", AllDay: true}}}
	svc := newService(cal, loc, now)

	_, err := svc.CreateBooking(context.Background(), verifiedSession(), "2025-05-19 12:00", "taxes")
	assert.NoError(t, err)
}

func TestListBookingsScopedByOwnershipPrefix(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{events: []models.CalendarEvent{
		{
			ID: "own-1", Summary: "abc123, Jane Doe, Meeting with tax advisor",
			Description: "RRSP question",
			Start:       at(loc, 2025, time.May, 20, 10, 0, 0),
			End:         at(loc, 2025, time.May, 20, 10, 20, 0),
		},
		{
			ID: "other-1", Summary: "xyz789, John Roe, Meeting with tax advisor",
			Start: at(loc, 2025, time.May, 20, 11, 0, 0),
		},
		{
			// Past booking; the future-only window excludes it.
			ID: "own-old", Summary: "abc123, Jane Doe, Meeting with tax advisor",
			Start: at(loc, 2025, time.May, 5, 10, 0, 0),
		},
	}}
	svc := newService(cal, loc, now)

	bookings, err := svc.ListBookings(context.Background(), verifiedSession())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "own-1", bookings[0].EventID)
	assert.Equal(t, "RRSP question", bookings[0].Topic)
}

func TestCancelBookingNotFoundLeavesCalendarUntouched(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{events: []models.CalendarEvent{{
		ID: "own-1", Summary: "abc123, Jane Doe, Meeting with tax advisor",
		Start: at(loc, 2025, time.May, 19, 12, 0, 0),
		End:   at(loc, 2025, time.May, 19, 12, 20, 0),
	}}}
	svc := newService(cal, loc, now)

	_, err := svc.CancelBooking(context.Background(), verifiedSession(), "2025-05-19 13:00")
	assert.True(t, scheduling.IsCode(err, scheduling.CodeBookingNotFound))
	assert.Len(t, cal.events, 1, "a failed cancel must not mutate any booking")
}

func TestRescheduleBookingToOwnSlot(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{events: []models.CalendarEvent{{
		ID: "own-1", Summary: "abc123, Jane Doe, Meeting with tax advisor",
		Start: at(loc, 2025, time.May, 19, 12, 0, 0),
		End:   at(loc, 2025, time.May, 19, 12, 20, 0),
	}}}
	svc := newService(cal, loc, now)

	// The booking's own slot is excluded from the conflict set.
	booking, err := svc.RescheduleBooking(context.Background(), verifiedSession(), "2025-05-19 12:00", "2025-05-19 12:00")
	require.NoError(t, err)
	assert.True(t, booking.Start.Equal(at(loc, 2025, time.May, 19, 12, 0, 0)))
}

func TestRescheduleBookingRules(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	ctx := context.Background()

	seed := func() *fakeCalendar {
		return &fakeCalendar{events: []models.CalendarEvent{
			{
				ID: "own-1", Summary: "abc123, Jane Doe, Meeting with tax advisor",
				Start: at(loc, 2025, time.May, 19, 12, 0, 0),
				End:   at(loc, 2025, time.May, 19, 12, 20, 0),
			},
			{
				ID: "other-1", Summary: "xyz789, John Roe, Meeting with tax advisor",
				Start: at(loc, 2025, time.May, 19, 13, 0, 0),
				End:   at(loc, 2025, time.May, 19, 13, 20, 0),
			},
		}}
	}

	t.Run("conflict with another booking", func(t *testing.T) {
		svc := newService(seed(), loc, now)
		_, err := svc.RescheduleBooking(ctx, verifiedSession(), "2025-05-19 12:00", "2025-05-19 13:00")
		assert.True(t, scheduling.IsCode(err, scheduling.CodeSlotTaken))
	})

	t.Run("weekend rejected", func(t *testing.T) {
		svc := newService(seed(), loc, now)
		_, err := svc.RescheduleBooking(ctx, verifiedSession(), "2025-05-19 12:00", "2025-05-17 10:00")
		assert.True(t, scheduling.IsCode(err, scheduling.CodeWeekendRejected))
	})

	t.Run("outside business hours rejected", func(t *testing.T) {
		svc := newService(seed(), loc, now)
		_, err := svc.RescheduleBooking(ctx, verifiedSession(), "2025-05-19 12:00", "2025-05-20 08:00")
		assert.True(t, scheduling.IsCode(err, scheduling.CodeOutsideBusinessHours))
	})

	t.Run("new time quantized", func(t *testing.T) {
		svc := newService(seed(), loc, now)
		booking, err := svc.RescheduleBooking(ctx, verifiedSession(), "2025-05-19 12:00", "2025-05-20 10:44")
		require.NoError(t, err)
		assert.True(t, booking.Start.Equal(at(loc, 2025, time.May, 20, 10, 30, 0)))
		assert.True(t, booking.End.Equal(at(loc, 2025, time.May, 20, 10, 50, 0)))
	})

	t.Run("no past or lookahead checks on reschedule", func(t *testing.T) {
		// Unlike create, reschedule accepts a weekday time in the
		// past. Shipped behavior, preserved on purpose.
		svc := newService(seed(), loc, now)
		booking, err := svc.RescheduleBooking(ctx, verifiedSession(), "2025-05-19 12:00", "2025-05-09 10:00")
		require.NoError(t, err)
		assert.True(t, booking.Start.Equal(at(loc, 2025, time.May, 9, 10, 0, 0)))
	})
}

func TestRemoteErrorsSurfaceProviderText(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)
	cal := &fakeCalendar{listErr: scheduling.RemoteError("retrieving events", errors.New("quota exceeded"))}
	svc := newService(cal, loc, now)

	_, err := svc.CreateBooking(context.Background(), verifiedSession(), "2025-05-19 12:00", "taxes")
	require.True(t, scheduling.IsCode(err, scheduling.CodeRemoteError))
	assert.Contains(t, err.Error(), "quota exceeded")
}
