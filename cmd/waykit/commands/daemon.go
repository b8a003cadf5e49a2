package commands

import (
	"log/slog"
	"waykit/internal/ydotool"
	"waykit/lib/osutil"

	"github.com/spf13/cobra"
)

func init() {
	daemonCmd.AddCommand(daemonRestartCmd)
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manages the ydotoold input daemon.",
}

var daemonRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Stops every running ydotoold and starts a new one.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		daemon := ydotool.NewDaemon(a.cfg.Ydotool.DaemonBin, ydotool.SystemProcesses{}, osutil.ExecRunner{}, a.tel)
		err = daemon.Restart(cmd.Context())
		if err != nil {
			return err
		}
		slog.Info("ydotoold restarted")
		return nil
	},
}
