package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(h, m, s int) time.Time {
	return time.Date(2024, 3, 14, h, m, s, 0, time.Local)
}

func TestScheduleDelay(t *testing.T) {
	testCases := []struct {
		now       time.Time
		scheduled string
		expected  time.Duration
	}{
		{now: at(10, 0, 0), scheduled: "10:00:05", expected: 5 * time.Second},
		// direction is ignored
		{now: at(10, 0, 5), scheduled: "10:00:00", expected: 5 * time.Second},
		{now: at(10, 0, 0), scheduled: "10:00:00", expected: 0},
		{now: at(9, 30, 0), scheduled: "11:00:00", expected: 2*time.Hour + 30*time.Minute},
		// components are summed independently
		{now: at(10, 59, 0), scheduled: "11:00:00", expected: time.Hour + 59*time.Minute},
		// no day rollover
		{now: at(23, 0, 0), scheduled: "01:00:00", expected: 22 * time.Hour},
	}

	for _, test := range testCases {
		delay, err := ScheduleDelay(test.now, test.scheduled)
		require.NoError(t, err, test.scheduled)
		require.Equal(t, test.expected, delay, test.scheduled)
	}
}

func TestScheduleDelayMalformed(t *testing.T) {
	for _, scheduled := range []string{"abc", "10:00", "10:00:00:00", "10:xx:00", ""} {
		delay, err := ScheduleDelay(at(10, 0, 0), scheduled)
		require.ErrorIs(t, err, ErrScheduleFormat, scheduled)
		require.Zero(t, delay)
	}
}

func TestSendURL(t *testing.T) {
	require.Equal(
		t,
		"https://web.whatsapp.com/send?phone=15550100&text=hi+%26+bye%3F",
		SendURL("https://web.whatsapp.com/", "15550100", "hi & bye?"),
	)
	require.Equal(t, "https://web.whatsapp.com/", HomeURL("https://web.whatsapp.com"))
}
