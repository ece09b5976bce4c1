// Package calendar adapts the Google Calendar v3 API to the
// scheduling core's CalendarRepository port.
package calendar

import (
	"context"
	"fmt"
	"time"

	"taxline/models"
	"taxline/services/scheduling"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendarRepo talks to a single Google calendar, selected by
// id ("primary" by default).
type GoogleCalendarRepo struct {
	svc        *gcal.Service
	calendarID string
	timezone   string
}

func NewGoogleCalendarRepo(ctx context.Context, credentialsFile, calendarID, timezone string) (*GoogleCalendarRepo, error) {
	svc, err := gcal.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleCalendarRepo{svc: svc, calendarID: calendarID, timezone: timezone}, nil
}

// toModel converts a provider event. Entries without a dateTime start
// (all-day or date-only) are flagged AllDay so the scheduling core
// skips them in conflict checks; unparseable starts are treated the
// same way rather than dropped.
func toModel(it *gcal.Event) models.CalendarEvent {
	ev := models.CalendarEvent{
		ID:          it.Id,
		Summary:     it.Summary,
		Description: it.Description,
	}
	if it.Start == nil || it.Start.DateTime == "" {
		ev.AllDay = true
		return ev
	}
	start, err := time.Parse(time.RFC3339, it.Start.DateTime)
	if err != nil {
		ev.AllDay = true
		return ev
	}
	ev.Start = start
	if it.End != nil && it.End.DateTime != "" {
		if end, err := time.Parse(time.RFC3339, it.End.DateTime); err == nil {
			ev.End = end
		}
	}
	return ev
}

func (r *GoogleCalendarRepo) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]models.CalendarEvent, error) {
	call := r.svc.Events.List(r.calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if !timeMax.IsZero() {
		call = call.TimeMax(timeMax.Format(time.RFC3339))
	}
	resp, err := call.Do()
	if err != nil {
		return nil, scheduling.RemoteError("retrieving events", err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, it := range resp.Items {
		events = append(events, toModel(it))
	}
	return events, nil
}

func (r *GoogleCalendarRepo) InsertEvent(ctx context.Context, event models.CalendarEvent) (*models.CalendarEvent, error) {
	body := &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: r.timezone},
		End:         &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339), TimeZone: r.timezone},
	}
	created, err := r.svc.Events.Insert(r.calendarID, body).Context(ctx).Do()
	if err != nil {
		return nil, scheduling.RemoteError("creating booking", err)
	}
	ev := toModel(created)
	return &ev, nil
}

func (r *GoogleCalendarRepo) PatchEvent(ctx context.Context, eventID string, start, end time.Time) (*models.CalendarEvent, error) {
	body := &gcal.Event{
		Start: &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: r.timezone},
		End:   &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: r.timezone},
	}
	patched, err := r.svc.Events.Patch(r.calendarID, eventID, body).Context(ctx).Do()
	if err != nil {
		return nil, scheduling.RemoteError("updating booking", err)
	}
	ev := toModel(patched)
	return &ev, nil
}

func (r *GoogleCalendarRepo) DeleteEvent(ctx context.Context, eventID string) error {
	if err := r.svc.Events.Delete(r.calendarID, eventID).Context(ctx).Do(); err != nil {
		return scheduling.RemoteError("cancelling booking", err)
	}
	return nil
}
