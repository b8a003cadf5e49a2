package whatsapp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrScheduleFormat is returned for scheduled times that are not HH:MM:SS.
var ErrScheduleFormat = errors.New("invalid scheduled format, expected HH:MM:SS")

// ParseSchedule splits "HH:MM:SS" into its three integer components. The
// values are not range checked.
func ParseSchedule(scheduled string) (hours, mins, secs int, err error) {
	parts := strings.Split(scheduled, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrScheduleFormat, scheduled)
	}
	values := make([]int, 3)
	for i, p := range parts {
		values[i], err = strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrScheduleFormat, scheduled)
		}
	}
	return values[0], values[1], values[2], nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ScheduleDelay computes how long to wait before sending. Each component's
// absolute difference is summed on its own:
//
//	((|h-H|*60 + |m-M|)*60 + |s-S|) seconds
//
// This is not a real time delta. It ignores direction and day rollover, so
// 10:00:05 -> 10:00:00 also yields 5s.
func ScheduleDelay(now time.Time, scheduled string) (time.Duration, error) {
	h, m, s, err := ParseSchedule(scheduled)
	if err != nil {
		return 0, err
	}
	hd := abs(now.Hour() - h)
	md := abs(now.Minute() - m)
	sd := abs(now.Second() - s)
	seconds := (hd*60+md)*60 + sd
	return time.Duration(seconds) * time.Second, nil
}
