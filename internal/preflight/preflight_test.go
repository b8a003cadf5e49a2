package preflight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"waykit/internal/env"
	"waykit/internal/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeDaemon struct {
	running bool
	err     error
}

func (d fakeDaemon) Running(context.Context) (bool, error) {
	return d.running, d.err
}

func byName(results []Result) map[string]Result {
	out := map[string]Result{}
	for _, r := range results {
		out[r.Name] = r
	}
	return out
}

func TestCheckAllPassing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	root := t.TempDir()
	e := env.Env{BaseURL: server.URL, ProfileDir: filepath.Join(root, env.ProfileDirName)}
	require.NoError(t, os.Mkdir(e.ProfileDir, 0755))

	tel := &telemetry.Recorder{}
	checker := NewChecker(e, fakeDaemon{running: true}, tel)
	checker.lookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	checker.browserPath = func() (string, bool) { return "/usr/bin/chromium", true }

	results := checker.Check(context.Background())
	require.True(t, AllOK(results), results)

	named := byName(results)
	require.Equal(t, "/usr/bin/ydotool", named["ydotool"].Detail)
	require.Equal(t, "/usr/bin/chromium", named["browser"].Detail)
	require.Equal(t, e.ProfileDir, named["profile"].Detail)
	require.True(t, tel.Has("debug", "preflight: resty.request"))
}

func TestCheckFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	e := env.Env{
		BaseURL:    server.URL,
		ProfileDir: filepath.Join(t.TempDir(), env.ProfileDirName),
		BrowserBin: "my-chromium",
	}
	checker := NewChecker(e, fakeDaemon{err: errors.New("permission denied")}, &telemetry.Recorder{})
	checker.lookPath = func(file string) (string, error) { return "", errors.New("not found") }

	results := checker.Check(context.Background())
	require.False(t, AllOK(results))

	named := byName(results)
	require.False(t, named["ydotoold"].OK)
	require.Equal(t, "permission denied", named["ydotoold"].Detail)
	require.False(t, named["ydotool"].OK)
	require.False(t, named["browser"].OK)
	require.False(t, named["whatsapp web"].OK)
	// a missing profile only means the next run is a first run
	require.True(t, named["profile"].OK)
	require.Contains(t, named["profile"].Detail, "qr code")
}

func TestCheckDaemonStopped(t *testing.T) {
	checker := NewChecker(env.Env{}, fakeDaemon{}, &telemetry.Recorder{})
	res := checker.checkDaemon(context.Background())
	require.False(t, res.OK)
	require.Contains(t, res.Detail, "daemon restart")
}
