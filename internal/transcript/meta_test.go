package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	testCases := []struct {
		raw       string
		timestamp string
		sender    string
	}{
		{raw: "[10:21, 3/14/2024] Alice: ", timestamp: "10:21, 3/14/2024", sender: "Alice"},
		{raw: "[9:05 PM, 12/1/2023] +1 555 0100: ", timestamp: "9:05 PM, 12/1/2023", sender: "+1 555 0100"},
		{raw: "[10:21, 3/14/2024] Dr. Who: Part 2: ", timestamp: "10:21, 3/14/2024", sender: "Dr. Who: Part 2"},
		{raw: "[10:21, 3/14/2024] Jo Ann : ", timestamp: "10:21, 3/14/2024", sender: "Jo Ann"},
	}

	for _, test := range testCases {
		meta, err := ParseMeta(test.raw)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.raw, meta.Raw)
		require.Equal(t, test.timestamp, meta.Timestamp)
		require.Equal(t, test.sender, meta.Sender)
	}
}

func TestParseMetaRejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"Alice: ",
		"[10:21, 3/14/2024] Alice",
		"[10:21, 3/14/2024]Alice: ",
		"[10:21, 3/14/2024]  : ",
	} {
		_, err := ParseMeta(raw)
		require.ErrorIs(t, err, ErrMalformedMeta, raw)
	}
}

func TestMetaTime(t *testing.T) {
	meta, err := ParseMeta("[10:21, 3/14/2024] Alice: ")
	require.NoError(t, err)
	ts, ok := meta.Time()
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 14, 10, 21, 0, 0, time.Local), ts)

	meta, err = ParseMeta("[9:05 PM, 12/1/2023] Bob: ")
	require.NoError(t, err)
	ts, ok = meta.Time()
	require.True(t, ok)
	require.Equal(t, time.Date(2023, 12, 1, 21, 5, 0, 0, time.Local), ts)

	meta, err = ParseMeta("[yesterday] Bob: ")
	require.NoError(t, err)
	_, ok = meta.Time()
	require.False(t, ok)
}
