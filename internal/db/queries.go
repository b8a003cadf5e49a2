package db

import (
	"context"
)

type Transcript struct {
	ID           int64
	Uid          string
	CapturedAt   int64
	SnapshotPath string
	ParticipantA string
	ParticipantB string
	Dropped      int64
}

type Message struct {
	ID           int64
	TranscriptID int64
	Position     int64
	Meta         string
	SentAt       string
	Sender       string
	Text         string
	Speaker      Speaker
}

const createTranscript = `-- name: CreateTranscript :one
insert into transcript(uid, captured_at, snapshot_path, participant_a, participant_b, dropped)
values (?, ?, ?, ?, ?, ?)
returning id
`

type CreateTranscriptParams struct {
	Uid          string
	CapturedAt   int64
	SnapshotPath string
	ParticipantA string
	ParticipantB string
	Dropped      int64
}

func (q *Queries) CreateTranscript(ctx context.Context, arg CreateTranscriptParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createTranscript,
		arg.Uid,
		arg.CapturedAt,
		arg.SnapshotPath,
		arg.ParticipantA,
		arg.ParticipantB,
		arg.Dropped,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const addMessage = `-- name: AddMessage :exec
insert into message(transcript_id, position, meta, sent_at, sender, text, speaker)
values (?, ?, ?, ?, ?, ?, ?)
`

type AddMessageParams struct {
	TranscriptID int64
	Position     int64
	Meta         string
	SentAt       string
	Sender       string
	Text         string
	Speaker      Speaker
}

func (q *Queries) AddMessage(ctx context.Context, arg AddMessageParams) error {
	_, err := q.db.ExecContext(ctx, addMessage,
		arg.TranscriptID,
		arg.Position,
		arg.Meta,
		arg.SentAt,
		arg.Sender,
		arg.Text,
		arg.Speaker,
	)
	return err
}

const getMessages = `-- name: GetMessages :many
select id, transcript_id, position, meta, sent_at, sender, text, speaker from message
where transcript_id = ?
order by position
`

func (q *Queries) GetMessages(ctx context.Context, transcriptID int64) ([]Message, error) {
	rows, err := q.db.QueryContext(ctx, getMessages, transcriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Message
	for rows.Next() {
		var i Message
		if err := rows.Scan(
			&i.ID,
			&i.TranscriptID,
			&i.Position,
			&i.Meta,
			&i.SentAt,
			&i.Sender,
			&i.Text,
			&i.Speaker,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTranscripts = `-- name: GetTranscripts :many
select id, uid, captured_at, snapshot_path, participant_a, participant_b, dropped from transcript
order by captured_at desc, id desc
`

func (q *Queries) GetTranscripts(ctx context.Context) ([]Transcript, error) {
	rows, err := q.db.QueryContext(ctx, getTranscripts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transcript
	for rows.Next() {
		var i Transcript
		if err := rows.Scan(
			&i.ID,
			&i.Uid,
			&i.CapturedAt,
			&i.SnapshotPath,
			&i.ParticipantA,
			&i.ParticipantB,
			&i.Dropped,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
