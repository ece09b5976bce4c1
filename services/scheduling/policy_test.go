package scheduling_test

import (
	"testing"
	"time"

	"taxline/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vancouver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Vancouver")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, y int, mo time.Month, d, h, min, sec int) time.Time {
	return time.Date(y, mo, d, h, min, sec, 0, loc)
}

func TestValidateAndQuantizeRejections(t *testing.T) {
	loc := vancouver(t)
	// Monday morning, before opening.
	now := at(loc, 2025, time.May, 12, 8, 0, 0)

	tests := []struct {
		name      string
		candidate time.Time
		code      scheduling.ErrorCode
	}{
		{"in the past", at(loc, 2025, time.May, 9, 10, 0, 0), scheduling.CodeInPast},
		{"more than a year out", at(loc, 2026, time.June, 1, 10, 0, 0), scheduling.CodeTooFarOut},
		{"saturday", at(loc, 2025, time.May, 17, 10, 0, 0), scheduling.CodeWeekendRejected},
		{"sunday late evening", at(loc, 2025, time.May, 18, 23, 0, 0), scheduling.CodeWeekendRejected},
		{"before opening", at(loc, 2025, time.May, 19, 8, 59, 0), scheduling.CodeOutsideBusinessHours},
		{"sixteen thirty", at(loc, 2025, time.May, 19, 16, 30, 0), scheduling.CodeOutsideBusinessHours},
		{"sixteen fifty-nine", at(loc, 2025, time.May, 19, 16, 59, 0), scheduling.CodeOutsideBusinessHours},
		{"after close", at(loc, 2025, time.May, 19, 17, 0, 0), scheduling.CodeOutsideBusinessHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scheduling.ValidateAndQuantize(tt.candidate, now)
			require.Error(t, err)
			assert.True(t, scheduling.IsCode(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestValidateAndQuantizeFloorsToHalfHour(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)

	tests := []struct {
		name      string
		candidate time.Time
		want      time.Time
	}{
		{"on the hour unchanged", at(loc, 2025, time.May, 19, 10, 0, 0), at(loc, 2025, time.May, 19, 10, 0, 0)},
		{"minute 29 floors to :00", at(loc, 2025, time.May, 19, 10, 29, 0), at(loc, 2025, time.May, 19, 10, 0, 0)},
		{"minute 30 stays :30", at(loc, 2025, time.May, 19, 10, 30, 0), at(loc, 2025, time.May, 19, 10, 30, 0)},
		{"minute 59 floors to :30", at(loc, 2025, time.May, 19, 10, 59, 0), at(loc, 2025, time.May, 19, 10, 30, 0)},
		{"seconds dropped", at(loc, 2025, time.May, 19, 10, 0, 45), at(loc, 2025, time.May, 19, 10, 0, 0)},
		{"sixteen sharp is last start", at(loc, 2025, time.May, 19, 16, 0, 0), at(loc, 2025, time.May, 19, 16, 0, 0)},
		{"sixteen oh one floors to sixteen", at(loc, 2025, time.May, 19, 16, 1, 0), at(loc, 2025, time.May, 19, 16, 0, 0)},
		{"sixteen twenty-nine floors to sixteen", at(loc, 2025, time.May, 19, 16, 29, 0), at(loc, 2025, time.May, 19, 16, 0, 0)},
		{"opening time accepted", at(loc, 2025, time.May, 19, 9, 0, 0), at(loc, 2025, time.May, 19, 9, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scheduling.ValidateAndQuantize(tt.candidate, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Zero(t, got.Second())
			assert.Zero(t, got.Nanosecond())
		})
	}
}

func TestValidateAndQuantizeIdempotent(t *testing.T) {
	loc := vancouver(t)
	now := at(loc, 2025, time.May, 12, 8, 0, 0)

	slot, err := scheduling.ValidateAndQuantize(at(loc, 2025, time.May, 19, 10, 47, 13), now)
	require.NoError(t, err)

	again, err := scheduling.ValidateAndQuantize(slot, now)
	require.NoError(t, err)
	assert.True(t, again.Equal(slot), "validating an already-quantized slot must return it unchanged")
}
