package scheduling

import (
	"encoding/base64"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// InviteDataURI serializes a single-event calendar invite for the
// given slot and returns it as a base64 data URI, ready to surface as
// a downloadable attachment alongside the confirmation.
func InviteDataURI(start, end time.Time, topic string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	ev := cal.AddEvent(uuid.NewString())
	ev.SetDtStampTime(time.Now())
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary("Meeting with tax advisor")
	ev.SetDescription(topic)

	payload := cal.Serialize()
	return "data:text/calendar;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}
