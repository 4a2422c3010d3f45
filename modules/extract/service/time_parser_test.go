package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*3600)

// Wednesday morning.
func refNow() time.Time {
	return time.Date(2025, 11, 5, 8, 0, 0, 0, ict)
}

func TestResolveTimeRange_ExplicitClockForms(t *testing.T) {
	now := refNow()

	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"colon", "17:30", time.Date(2025, 11, 5, 17, 30, 0, 0, ict)},
		{"h suffix", "17h30", time.Date(2025, 11, 5, 17, 30, 0, 0, ict)},
		{"h only", "17h", time.Date(2025, 11, 5, 17, 0, 0, 0, ict)},
		{"gio phut", "17 giờ 30 phút", time.Date(2025, 11, 5, 17, 30, 0, 0, ict)},
		{"ruoi", "10 rưỡi", time.Date(2025, 11, 5, 10, 30, 0, 0, ict)},
		{"kem", "9h kém 15", time.Date(2025, 11, 5, 8, 45, 0, 0, ict)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := ResolveTimeRange(tt.text, now)
			require.Equal(t, ResolveOK, outcome)
			assert.True(t, tt.want.Equal(got.Start), "got %v, want %v", got.Start, tt.want)
			assert.Nil(t, got.End)
		})
	}
}

func TestResolveTimeRange_DayPeriods(t *testing.T) {
	now := refNow()

	got, outcome := ResolveTimeRange("10h sáng mai", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 10, 0, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("10h tối", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 5, 22, 0, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("3h chiều mai", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 15, 0, 0, 0, ict).Equal(got.Start))

	// period word alone supplies the default clock
	got, outcome = ResolveTimeRange("chiều mai", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 15, 0, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("tối mai", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 20, 0, 0, 0, ict).Equal(got.Start))
}

func TestResolveTimeRange_ForwardRoll(t *testing.T) {
	now := refNow()

	// bare clock already past rolls one day
	got, outcome := ResolveTimeRange("7h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 7, 0, 0, 0, ict).Equal(got.Start))

	// an explicit "hôm nay" in the past is an error, not a roll
	_, outcome = ResolveTimeRange("hôm nay 7h sáng", now)
	assert.Equal(t, ResolveAlreadyPast, outcome)

	// explicit calendar date in the past rolls one year
	got, outcome = ResolveTimeRange("ngày 1 tháng 1 lúc 9h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2026, 1, 1, 9, 0, 0, 0, ict).Equal(got.Start))
}

func TestResolveTimeRange_Weekdays(t *testing.T) {
	now := refNow() // Wednesday

	got, outcome := ResolveTimeRange("thứ 6 lúc 14h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 7, 14, 0, 0, 0, ict).Equal(got.Start))

	// the same weekday as today means next week
	got, outcome = ResolveTimeRange("thứ 4 9h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 12, 9, 0, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("thứ 6 tuần sau 14h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 14, 14, 0, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("CN 10h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 9, 10, 0, 0, 0, ict).Equal(got.Start))

	// Saturday 09:00 is the weekend default
	got, outcome = ResolveTimeRange("cuối tuần", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 8, 9, 0, 0, 0, ict).Equal(got.Start))

	_, outcome = ResolveTimeRange("thứ 8 10h", now)
	assert.Equal(t, ResolveNotFound, outcome)

	// a weekday without a clock is incomplete, even when the reference
	// instant happens to sit on the weekend's 09:00 default
	at9 := time.Date(2025, 11, 5, 9, 0, 0, 0, ict)
	_, outcome = ResolveTimeRange("thứ 6", at9)
	assert.Equal(t, ResolveNotFound, outcome)

	got, outcome = ResolveTimeRange("cuối tuần", at9)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 8, 9, 0, 0, 0, ict).Equal(got.Start))
}

func TestResolveTimeRange_Durations(t *testing.T) {
	now := refNow()

	got, outcome := ResolveTimeRange("sau 30 phút", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 5, 8, 30, 0, 0, ict).Equal(got.Start))

	got, outcome = ResolveTimeRange("trong 2 giờ", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 5, 10, 0, 0, 0, ict).Equal(got.Start))

	// day-count duration combined with a clock
	got, outcome = ResolveTimeRange("2 ngày nữa 9h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 7, 9, 0, 0, 0, ict).Equal(got.Start))
}

func TestResolveTimeRange_Ranges(t *testing.T) {
	now := refNow()

	got, outcome := ResolveTimeRange("từ 10h đến 12h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 5, 10, 0, 0, 0, ict).Equal(got.Start))
	require.NotNil(t, got.End)
	assert.True(t, time.Date(2025, 11, 5, 12, 0, 0, 0, ict).Equal(*got.End))

	got, outcome = ResolveTimeRange("14h-16h mai", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 14, 0, 0, 0, ict).Equal(got.Start))
	require.NotNil(t, got.End)
	assert.True(t, time.Date(2025, 11, 6, 16, 0, 0, 0, ict).Equal(*got.End))

	// a rolled start drags the end along
	got, outcome = ResolveTimeRange("từ 6h đến 7h", now)
	require.Equal(t, ResolveOK, outcome)
	assert.True(t, time.Date(2025, 11, 6, 6, 0, 0, 0, ict).Equal(got.Start))
	require.NotNil(t, got.End)
	assert.True(t, time.Date(2025, 11, 6, 7, 0, 0, 0, ict).Equal(*got.End))
}

func TestResolveTimeRange_TimezoneHint(t *testing.T) {
	now := refNow()

	got, outcome := ResolveTimeRange("10h tối mai UTC+7", now)
	require.Equal(t, ResolveOK, outcome)
	want := time.Date(2025, 11, 6, 22, 0, 0, 0, time.FixedZone("UTC+7", 7*3600))
	assert.True(t, want.Equal(got.Start), "got %v, want %v", got.Start, want)
}

func TestResolveTimeRange_NotFound(t *testing.T) {
	now := refNow()

	for _, text := range []string{"", "   ", "họp với đối tác", "ngày 30 tháng 2 lúc 9h", "25h"} {
		_, outcome := ResolveTimeRange(text, now)
		assert.Equal(t, ResolveNotFound, outcome, "input %q", text)
	}
}
