package commands

import (
	"fmt"
	"log/slog"
	"os"
	"waykit/internal/store"
	"waykit/internal/transcript"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	readSnapshot *string
	readDb       *string
	readRaw      *bool
	readMe       *string
)

func init() {
	readSnapshot = readCmd.Flags().String("snapshot", "", "Read this html file instead of the last saved snapshot.")
	readDb = readCmd.Flags().String("db", "", "Also archive the transcript in this sqlite database.")
	readRaw = readCmd.Flags().Bool("raw", false, "Print the plain transcript instead of a table.")
	readMe = readCmd.Flags().String("me", "", "Your own display name, your messages are labelled \"me\".")
	rootCmd.AddCommand(readCmd)
}

func speakerLabel(t transcript.Transcript, me string, m transcript.Message) string {
	if me != "" && m.Sender == me {
		return "me"
	}
	switch m.Sender {
	case t.A.Name:
		return "A"
	case t.B.Name:
		return "B"
	}
	return "-"
}

func renderTranscript(t transcript.Transcript, me string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Speaker", "Time", "Sender", "Text"})
	for i, m := range t.Messages {
		tw.AppendRow(table.Row{i + 1, speakerLabel(t, me, m), m.Timestamp, m.Sender, m.Text})
	}
	tw.AppendFooter(table.Row{
		"", "",
		"",
		fmt.Sprintf("A: %s (%d)", t.A.Name, len(t.A.Messages)),
		fmt.Sprintf("B: %s (%d), dropped %d", t.B.Name, len(t.B.Messages), t.Dropped),
	})
	tw.Render()
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Parses the last saved chat page into a two-person transcript.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		path := a.env.SnapshotPath
		if *readSnapshot != "" {
			path = *readSnapshot
		}

		parsed, err := transcript.ReadSnapshot(cmd.Context(), path, a.tel)
		if err != nil {
			return err
		}
		if parsed.Empty() {
			slog.Warn("fewer than two participants found, nothing to show", "snapshot", path)
			return nil
		}

		me := ""
		if *readMe != "" {
			speaker, ok := parsed.Resolve(*readMe)
			if !ok {
				slog.Warn("no participant matches --me", "me", *readMe, "participants", parsed.Participants())
			}
			me = speaker.Name
		}

		if *readRaw {
			fmt.Println(parsed.Text)
		} else {
			renderTranscript(parsed, me)
		}

		if *readDb == "" {
			return nil
		}
		archive, err := store.Open(*readDb, a.tel)
		if err != nil {
			return err
		}
		defer archive.Close()

		stat, err := os.Stat(path)
		if err != nil {
			return err
		}
		id, err := archive.Save(cmd.Context(), parsed, path, stat.ModTime())
		if err != nil {
			return err
		}
		slog.Info("transcript archived", "db", *readDb, "id", id)
		return nil
	},
}
