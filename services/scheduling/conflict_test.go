package scheduling_test

import (
	"testing"
	"time"

	"taxline/models"
	"taxline/services/scheduling"

	"github.com/stretchr/testify/assert"
)

func TestIsFree(t *testing.T) {
	loc := vancouver(t)
	day := at(loc, 2025, time.May, 19, 0, 0, 0)

	events := []models.CalendarEvent{
		// Stored with stray seconds; conflict checks truncate them.
		{ID: "e1", Summary: "abc123, Jane Doe, Meeting with tax advisor", Start: at(loc, 2025, time.May, 19, 12, 0, 30)},
		{ID: "e2", Summary: "Company picnic", AllDay: true},
		// Same instant as 13:00 Vancouver, stored in UTC.
		{ID: "e3", Summary: "xyz789, John Roe, Meeting with tax advisor", Start: at(loc, 2025, time.May, 19, 13, 0, 0).UTC()},
	}

	assert.False(t, scheduling.IsFree(events, loc, day.Add(12*time.Hour), ""), "12:00 is occupied")
	assert.False(t, scheduling.IsFree(events, loc, day.Add(13*time.Hour), ""), "13:00 is occupied via UTC-stored event")
	assert.True(t, scheduling.IsFree(events, loc, day.Add(12*time.Hour+30*time.Minute), ""), "12:30 is free")

	// All-day entries never occupy a slot.
	assert.True(t, scheduling.IsFree(events, loc, day.Add(9*time.Hour), ""))

	// Excluding a booking's own id frees its slot for rescheduling.
	assert.True(t, scheduling.IsFree(events, loc, day.Add(12*time.Hour), "e1"))
	assert.False(t, scheduling.IsFree(events, loc, day.Add(13*time.Hour), "e1"))
}
