// Package store archives parsed transcripts in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"waykit/internal/db"
	"waykit/internal/telemetry"
	"waykit/internal/transcript"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const report_archive_save = "archive.save"

var ErrEmptyTranscript = errors.New("transcript has fewer than two participants")

type Archive struct {
	conn *sql.DB
	qry  *db.Queries
	tel  telemetry.API
}

// Open opens (or creates) the archive at path, ":memory:" is allowed.
func Open(path string, tel telemetry.API) (Archive, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return Archive{}, err
	}
	// every connection to ":memory:" is a separate database
	conn.SetMaxOpenConns(1)

	_, err = conn.Exec("pragma foreign_keys = on")
	if err != nil {
		conn.Close()
		return Archive{}, err
	}
	_, err = conn.Exec(db.Schema)
	if err != nil {
		conn.Close()
		return Archive{}, fmt.Errorf("apply schema: %w", err)
	}

	return Archive{
		conn: conn,
		qry:  db.New(conn),
		tel:  telemetry.NewScopedAPI("store", tel),
	}, nil
}

func (a Archive) Close() error {
	return a.conn.Close()
}

func speakerOf(t transcript.Transcript, m transcript.Message) db.Speaker {
	switch m.Sender {
	case t.A.Name:
		return db.SPEAKER_A
	case t.B.Name:
		return db.SPEAKER_B
	}
	return db.SPEAKER_OTHER
}

func sentAt(m transcript.Message) string {
	ts, ok := m.Time()
	if !ok {
		return ""
	}
	return ts.Format(time.RFC3339)
}

// Save stores a transcript and all of its messages, including the ones that
// were dropped from both speakers, and returns the new transcript id.
func (a Archive) Save(ctx context.Context, t transcript.Transcript, snapshotPath string, capturedAt time.Time) (int64, error) {
	if t.Empty() {
		return 0, ErrEmptyTranscript
	}

	var id int64
	err := db.WithTx(ctx, a.conn, func(tx *db.Queries) error {
		var err error
		id, err = tx.CreateTranscript(ctx, db.CreateTranscriptParams{
			Uid:          uuid.NewString(),
			CapturedAt:   capturedAt.Unix(),
			SnapshotPath: snapshotPath,
			ParticipantA: t.A.Name,
			ParticipantB: t.B.Name,
			Dropped:      int64(t.Dropped),
		})
		if err != nil {
			return fmt.Errorf("CreateTranscript: %w", err)
		}
		for i, m := range t.Messages {
			err = tx.AddMessage(ctx, db.AddMessageParams{
				TranscriptID: id,
				Position:     int64(i),
				Meta:         m.Raw,
				SentAt:       sentAt(m),
				Sender:       m.Sender,
				Text:         m.Text,
				Speaker:      speakerOf(t, m),
			})
			if err != nil {
				return fmt.Errorf("AddMessage %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		a.tel.ReportBroken(report_archive_save, err)
		return 0, err
	}
	a.tel.ReportCount(report_archive_save, int64(len(t.Messages)))
	return id, nil
}

// Messages returns the messages of a transcript in page order.
func (a Archive) Messages(ctx context.Context, transcriptID int64) ([]db.Message, error) {
	return a.qry.GetMessages(ctx, transcriptID)
}

// Transcripts returns every archived transcript, newest first.
func (a Archive) Transcripts(ctx context.Context) ([]db.Transcript, error) {
	return a.qry.GetTranscripts(ctx)
}
