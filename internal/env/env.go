// Package env holds the process-wide state built once at startup and
// passed to every workflow.
package env

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"waykit/internal/chrono"
	"waykit/internal/telemetry"
	"waykit/lib/osutil"
)

const (
	RootDirName     = "pywaykit"
	ProfileDirName  = "firefox_whatsapp_profile"
	SnapshotName    = "whatsapp_page.html"
	daemonSettleFor = time.Second
)

const report_env_bootstrap = "env.bootstrap"

type Env struct {
	RootDir      string
	ProfileDir   string
	SnapshotPath string
	BaseURL      string
	BrowserBin   string

	Screen Screen
	// Started is the wall-clock time captured during bootstrap.
	Started time.Time

	Sleep chrono.SleepFunc
	Tel   telemetry.API
}

// FirstRun returns true if the browser profile directory does not exist yet.
// The directory's presence is the only signal, its contents are not inspected.
func (e Env) FirstRun() bool {
	_, err := os.Stat(e.ProfileDir)
	return os.IsNotExist(err)
}

// DaemonRestarter restarts the input daemon.
type DaemonRestarter interface {
	Restart(ctx context.Context) error
}

type Deps struct {
	Daemon DaemonRestarter
	Runner osutil.Runner
	Time   chrono.TimeAPI
	Sleep  chrono.SleepFunc
	Tel    telemetry.API
}

func (d Deps) withDefaults() Deps {
	if d.Runner == nil {
		d.Runner = osutil.ExecRunner{}
	}
	if d.Time == nil {
		d.Time = chrono.NewStandardTime()
	}
	if d.Sleep == nil {
		d.Sleep = chrono.Sleep
	}
	if d.Tel == nil {
		d.Tel = telemetry.SlogAPI{}
	}
	return d
}

// DefaultRootDir returns $HOME/pywaykit.
func DefaultRootDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, RootDirName), nil
}

// Bootstrap restarts the input daemon, resolves the screen, ensures the
// root directory exists and records the start time.
func Bootstrap(ctx context.Context, cfg Config, deps Deps) (Env, error) {
	deps = deps.withDefaults()

	if deps.Daemon != nil {
		err := deps.Daemon.Restart(ctx)
		if err != nil {
			deps.Tel.ReportWarning(report_env_bootstrap, fmt.Errorf("restart input daemon: %w", err))
		}
		err = deps.Sleep(ctx, daemonSettleFor)
		if err != nil {
			return Env{}, err
		}
	}

	rootDir := cfg.RootDir
	if rootDir == "" {
		var err error
		rootDir, err = DefaultRootDir()
		if err != nil {
			return Env{}, fmt.Errorf("resolve root dir: %w", err)
		}
	}
	err := os.MkdirAll(rootDir, 0755)
	if err != nil {
		return Env{}, fmt.Errorf("create root dir: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultConfig().BaseURL
	}

	return Env{
		RootDir:      rootDir,
		ProfileDir:   filepath.Join(rootDir, ProfileDirName),
		SnapshotPath: filepath.Join(rootDir, SnapshotName),
		BaseURL:      baseURL,
		BrowserBin:   cfg.Browser.Bin,
		Screen:       ResolveScreen(ctx, cfg.Screen, deps.Runner, deps.Tel),
		Started:      deps.Time.Now(),
		Sleep:        deps.Sleep,
		Tel:          deps.Tel,
	}, nil
}
