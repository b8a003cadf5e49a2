package commands

import (
	"time"
	"waykit/internal/whatsapp"

	"github.com/spf13/cobra"
)

var (
	sendSilent    *bool
	sendScheduled *string
	sendInstant   *time.Duration
	sendLog       *bool
)

func init() {
	sendSilent = sendCmd.Flags().Bool("silent", false, "Run the browser headless and press enter without the input daemon.")
	sendScheduled = sendCmd.Flags().String("at", "", "Wait until HH:MM:SS before sending.")
	sendInstant = sendCmd.Flags().Duration("linger", 0, "Keep the browser open this long after sending.")
	sendLog = sendCmd.Flags().Bool("log", false, "Log every step of the workflow.")
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <phone> <message>",
	Short: "Sends a message to a phone number through WhatsApp Web.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.close()

		client := whatsapp.NewClient(a.env, whatsapp.RodLauncher{}, a.input)
		return client.SendMessage(cmd.Context(), whatsapp.SendOptions{
			Phone:     args[0],
			Message:   args[1],
			Silent:    *sendSilent,
			Scheduled: *sendScheduled,
			Instant:   *sendInstant,
			Log:       *sendLog,
		})
	},
}
