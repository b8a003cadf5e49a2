package chrono

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSleepNonPositive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, Sleep(ctx, 0))
	require.NoError(t, Sleep(ctx, -time.Second))
}

func TestSleepRecorder(t *testing.T) {
	var rec SleepRecorder
	var sleep SleepFunc = rec.Sleep

	require.NoError(t, sleep(context.Background(), time.Second))
	require.NoError(t, sleep(context.Background(), 2*time.Second))
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.Slept)
	require.Equal(t, 3*time.Second, rec.Total())
}

func TestFixedTime(t *testing.T) {
	instant := time.Date(2024, 3, 14, 10, 21, 0, 0, time.UTC)
	var api TimeAPI = FixedTime(instant)
	require.True(t, instant.Equal(api.Now()))
}
