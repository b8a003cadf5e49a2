package commands

import (
	"errors"
	"os"
	"waykit/internal/preflight"
	"waykit/internal/ydotool"
	"waykit/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks the input daemon, browser and WhatsApp Web connectivity.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		daemon := ydotool.NewDaemon(a.cfg.Ydotool.DaemonBin, ydotool.SystemProcesses{}, osutil.ExecRunner{}, a.tel)
		results := preflight.NewChecker(a.env, daemon, a.tel).Check(cmd.Context())

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"Check", "OK", "Detail"})
		for _, r := range results {
			ok := "yes"
			if !r.OK {
				ok = "NO"
			}
			tw.AppendRow(table.Row{r.Name, ok, r.Detail})
		}
		tw.Render()

		if !preflight.AllOK(results) {
			return errors.New("some checks failed")
		}
		return nil
	},
}
