package models

import "time"

// CalendarEvent is the provider-agnostic view of one calendar entry.
// AllDay marks date-only entries, which never participate in slot
// conflict checks.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"allDay"`
}

// Booking is a consultation slot owned by a verified caller.
type Booking struct {
	EventID string    `json:"eventId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Topic   string    `json:"topic"`
}

// BookingConfirmation is returned after a successful create. The
// invite is a single-event ics payload encoded as a data URI so the
// caller can pull the meeting into their own calendar.
type BookingConfirmation struct {
	Booking       Booking `json:"booking"`
	Message       string  `json:"message"`
	InviteDataURI string  `json:"inviteDataUri"`
}
