package scheduling

import (
	"context"
	"time"

	"taxline/models"
)

// CalendarRepository is the capability the scheduling core requires
// from the external calendar. The core is agnostic to which provider
// backs it; the calendar remains the system of record and no booking
// state is cached across calls.
type CalendarRepository interface {
	// ListEvents returns events ordered by start time, with recurring
	// events expanded to single instances. A zero timeMax means
	// open-ended.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.CalendarEvent, error)
	InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error)
	PatchEvent(ctx context.Context, eventID string, start, end time.Time) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// SchedulingService exposes the booking use-cases. Each operation
// takes the caller's session explicitly; list-vs-cancel-vs-reschedule
// dispatch belongs to the agent layer, not here.
type SchedulingService interface {
	CreateBooking(ctx context.Context, sess *models.Session, dateTime, topic string) (*models.BookingConfirmation, error)
	ListBookings(ctx context.Context, sess *models.Session) ([]models.Booking, error)
	CancelBooking(ctx context.Context, sess *models.Session, originalDateTime string) (*models.Booking, error)
	RescheduleBooking(ctx context.Context, sess *models.Session, originalDateTime, newDateTime string) (*models.Booking, error)
}

// DefaultSchedulingService implements SchedulingService against a
// CalendarRepository. Now is injectable for tests and defaults to
// time.Now.
type DefaultSchedulingService struct {
	Calendar CalendarRepository
	Location *time.Location
	Now      func() time.Time
}
