package dateutils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-14", want: date(2025, 3, 14)},
		{in: "14.03.2025", want: date(2025, 3, 14)},
		{in: "03/14/2025", want: date(2025, 3, 14)},
		{in: " 2025/03/14 ", want: date(2025, 3, 14)},
		{in: "Mar 14, 2025", want: date(2025, 3, 14)},
		{in: "", wantErr: true},
		{in: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestDayOf_KeepsLocalCalendarDate(t *testing.T) {
	zone := time.FixedZone("UTC+13", 13*3600)
	local := time.Date(2025, 1, 1, 0, 30, 0, 0, zone)
	assert.Equal(t, date(2025, 1, 1), DayOf(local))
}

func TestAnniversary(t *testing.T) {
	assert.Equal(t, date(2026, 3, 1), Anniversary(date(2025, 3, 1)))
	assert.Equal(t, date(2025, 2, 28), Anniversary(date(2024, 2, 29)))
	assert.Equal(t, date(2029, 2, 28), AddYearsClamped(date(2024, 2, 29), 5))
	assert.Equal(t, date(2028, 2, 29), AddYearsClamped(date(2024, 2, 29), 4))
}

func TestClampedDate(t *testing.T) {
	assert.Equal(t, date(2025, 4, 30), ClampedDate(2025, time.April, 31))
	assert.Equal(t, date(2024, 2, 29), ClampedDate(2024, time.February, 31))
	assert.Equal(t, date(2025, 1, 15), ClampedDate(2025, time.January, 15))
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2025, time.February))
	assert.Equal(t, 14, MonthsBetween(date(2024, 11, 30), date(2026, 1, 1)))
	assert.Equal(t, 365, DaysBetween(date(2025, 1, 1), date(2026, 1, 1)))
}

func TestStartOfWeek(t *testing.T) {
	// 2025-10-16 is a Thursday, 2025-10-19 a Sunday.
	assert.Equal(t, date(2025, 10, 13), StartOfWeek(date(2025, 10, 16)))
	assert.Equal(t, date(2025, 10, 13), StartOfWeek(date(2025, 10, 19)))
	assert.Equal(t, date(2025, 10, 13), StartOfWeek(date(2025, 10, 13)))
}

func TestCompareDates(t *testing.T) {
	a := time.Date(2025, 5, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 5, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, CompareDates(a, b))
	assert.Equal(t, -1, CompareDates(date(2025, 4, 30), b))
	assert.Equal(t, 1, CompareDates(date(2025, 5, 2), b))
}

func TestEachDay(t *testing.T) {
	var days []string
	err := EachDay(date(2024, 2, 27), date(2024, 3, 2), func(day time.Time) error {
		days = append(days, ToISODate(day))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, days)

	stop := errors.New("stop")
	calls := 0
	err = EachDay(date(2025, 1, 1), date(2025, 2, 1), func(time.Time) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 3, calls)
}
