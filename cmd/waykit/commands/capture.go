package commands

import (
	"waykit/internal/whatsapp"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(captureCmd)
}

var captureCmd = &cobra.Command{
	Use:   "capture <phone> [message]",
	Short: "Loads a chat without sending and saves the page for `waykit read`.",
	Long: `Loads a chat without sending and saves the page for "waykit read".

The first run opens a visible browser on WhatsApp Web and waits 40 seconds
for the QR code to be scanned, the chat is not loaded until the next run.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		message := ""
		if len(args) > 1 {
			message = args[1]
		}
		client := whatsapp.NewClient(a.env, whatsapp.RodLauncher{}, a.input)
		return client.CaptureChat(cmd.Context(), args[0], message)
	},
}
