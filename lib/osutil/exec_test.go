package osutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunnerOutput(t *testing.T) {
	out, err := ExecRunner{}.Output(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(out))
}

func TestExecRunnerIncludesStderr(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "oops")
}

func TestRecordingRunner(t *testing.T) {
	runner := &RecordingRunner{
		Outputs: map[string][]byte{"xrandr": []byte("screen")},
	}
	ctx := context.Background()

	require.NoError(t, runner.Run(ctx, "ydotool", "type", "hi"))
	out, err := runner.Output(ctx, "xrandr", "--current")
	require.NoError(t, err)
	require.Equal(t, "screen", string(out))
	require.NoError(t, runner.Start("ydotoold"))

	require.Equal(t, []string{"ydotool type hi", "xrandr --current", "ydotoold"}, runner.Lines())
	require.True(t, runner.Calls[2].Detached)
	require.False(t, runner.Calls[0].Detached)

	runner.Err = errors.New("boom")
	_, err = runner.Output(ctx, "xrandr")
	require.EqualError(t, err, "boom")
}
