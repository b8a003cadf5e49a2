package commands

import (
	"context"
	"fmt"
	"log/slog"
	"waykit/internal/chrono"
	"waykit/internal/env"
	"waykit/internal/telemetry"
	"waykit/internal/ydotool"
	"waykit/lib/osutil"
	libtelemetry "waykit/lib/telemetry"
	"waykit/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	verbose *bool
	rootDir *string
)

var rootCmd = &cobra.Command{
	Use:   "waykit",
	Short: "waykit sends and reads WhatsApp Web messages from the command line.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		libtelemetry.InitSlog(*verbose)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output.")
	rootDir = rootCmd.PersistentFlags().String("root", "", "The directory holding the browser profile and snapshot, defaults to $HOME/pywaykit.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		serviceutil.Fatal("waykit failed", err)
	}
}

func newTelemetry() telemetry.API {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	return telemetry.NewSlogAPI(level)
}

type app struct {
	env   env.Env
	cfg   env.Config
	tel   telemetry.API
	input ydotool.Client
	// close flushes telemetry.
	close func()
}

// setup loads the config and bootstraps the environment, the input daemon is
// only restarted for commands that inject input.
func setup(ctx context.Context, restartDaemon bool) (app, error) {
	tel := newTelemetry()

	otel, err := libtelemetry.SetupFromEnv(ctx, "waykit")
	if err != nil {
		return app{}, fmt.Errorf("setup telemetry: %w", err)
	}
	shutdown := func() {
		err := otel.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}

	cfg, err := env.LoadConfig()
	if err != nil {
		shutdown()
		return app{}, err
	}
	if *rootDir != "" {
		cfg.RootDir = *rootDir
	}

	runner := osutil.ExecRunner{}
	deps := env.Deps{
		Runner: runner,
		Time:   chrono.NewStandardTime(),
		Sleep:  chrono.Sleep,
		Tel:    tel,
	}
	if restartDaemon {
		deps.Daemon = ydotool.NewDaemon(cfg.Ydotool.DaemonBin, ydotool.SystemProcesses{}, runner, tel)
	}

	e, err := env.Bootstrap(ctx, cfg, deps)
	if err != nil {
		shutdown()
		return app{}, err
	}
	slog.Debug("environment ready", "root", e.RootDir, "screen", e.Screen, "first_run", e.FirstRun())

	return app{
		env:   e,
		cfg:   cfg,
		tel:   tel,
		input: ydotool.NewClient(cfg.Ydotool.Bin, runner, tel),
		close: shutdown,
	}, nil
}
