package chrono

import (
	"context"
	"time"
)

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in the local timezone.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

// NewStandardTime is the constructor of StandardTime.
func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now()
}

// FixedTime is a TimeAPI that always returns the same instant.
type FixedTime time.Time

func (f FixedTime) Now() time.Time {
	return time.Time(f)
}

// SleepFunc blocks for the given duration or until the context is done.
type SleepFunc = func(ctx context.Context, d time.Duration) error

// Sleep is the standard SleepFunc backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SleepRecorder is a SleepFunc replacement that records durations without blocking.
type SleepRecorder struct {
	Slept []time.Duration
}

func (r *SleepRecorder) Sleep(_ context.Context, d time.Duration) error {
	r.Slept = append(r.Slept, d)
	return nil
}

// Total returns the sum of every recorded duration.
func (r *SleepRecorder) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Slept {
		total += d
	}
	return total
}
