// Package transcript recovers a two-person conversation from a saved
// WhatsApp Web page.
package transcript

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"waykit/internal/telemetry"
	"waykit/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("waykit.internal.transcript")

const (
	report_transcript_parse        = "transcript.parse"
	report_transcript_participants = "transcript.participants"
)

const (
	messageSelector = "div.copyable-text"
	metaAttribute   = "data-pre-plain-text"
	textSelector    = "span.selectable-text"
)

type Message struct {
	Meta
	Text string
}

// String renders the message as its raw metadata followed by its text.
func (m Message) String() string {
	return m.Raw + " " + m.Text
}

// Speaker is one side of the conversation and the messages it sent, in page order.
type Speaker struct {
	Name     string
	Messages []Message
}

type Transcript struct {
	// Text is every message in page order, each prefixed with a newline.
	Text string
	// A and B are the first two distinct senders in lexical order.
	A Speaker
	B Speaker
	// Messages holds every message in page order, including dropped ones.
	Messages []Message
	// Dropped counts messages whose sender was neither A nor B.
	Dropped int
}

// Participants returns the names of A and B, or nil for an empty transcript.
func (t Transcript) Participants() []string {
	if t.A.Name == "" && t.B.Name == "" {
		return nil
	}
	return []string{t.A.Name, t.B.Name}
}

// Empty is true when fewer than two participants were found.
func (t Transcript) Empty() bool {
	return t.A.Name == ""
}

func extractMessages(doc *goquery.Document, tel telemetry.API) ([]Message, error) {
	var messages []Message
	var parseErr error
	doc.Find(messageSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		raw, ok := sel.Attr(metaAttribute)
		if !ok {
			// the compose box shares the copyable-text class but carries no metadata
			tel.ReportDebug("skipping container without metadata", i)
			return true
		}
		meta, err := ParseMeta(raw)
		if err != nil {
			parseErr = fmt.Errorf("message %d: %w", i, err)
			return false
		}
		messages = append(messages, Message{
			Meta: meta,
			Text: htmlutil.FirstText(sel.Find(textSelector)),
		})
		return true
	})
	return messages, parseErr
}

func participants(messages []Message) []string {
	var people []string
	for _, m := range messages {
		if !slices.Contains(people, m.Sender) {
			people = append(people, m.Sender)
		}
	}
	slices.Sort(people)
	return people
}

// Parse reads a WhatsApp Web page and splits its messages between the two
// participants. Fewer than two distinct senders yields an empty Transcript and
// a nil error. Messages from a third sender still appear in Text and
// Messages but are left out of both speakers.
func Parse(ctx context.Context, r io.Reader, tel telemetry.API) (Transcript, error) {
	_, span := tracer.Start(ctx, "Parse")
	defer span.End()

	tel = telemetry.NewScopedAPI("transcript", tel)

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		tel.ReportBroken(report_transcript_parse, err)
		return Transcript{}, err
	}

	messages, err := extractMessages(doc, tel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse message metadata")
		tel.ReportBroken(report_transcript_parse, err)
		return Transcript{}, err
	}

	people := participants(messages)
	span.SetAttributes(
		attribute.Int("messages", len(messages)),
		attribute.Int("participants", len(people)),
	)
	if len(people) < 2 {
		tel.ReportWarning(report_transcript_participants, "fewer than two participants", people)
		return Transcript{}, nil
	}
	if len(people) > 2 {
		tel.ReportWarning(report_transcript_participants, "more than two participants, extra senders are dropped", people)
	}

	out := Transcript{
		A:        Speaker{Name: people[0]},
		B:        Speaker{Name: people[1]},
		Messages: messages,
	}
	var text strings.Builder
	for _, m := range messages {
		switch m.Sender {
		case out.A.Name:
			out.A.Messages = append(out.A.Messages, m)
		case out.B.Name:
			out.B.Messages = append(out.B.Messages, m)
		default:
			out.Dropped++
		}
		text.WriteString("\n")
		text.WriteString(m.String())
	}
	out.Text = text.String()

	tel.ReportCount(report_transcript_parse, int64(len(messages)))
	return out, nil
}

// ReadSnapshot parses the snapshot file at the given path.
func ReadSnapshot(ctx context.Context, path string, tel telemetry.API) (Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return Transcript{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return Parse(ctx, f, tel)
}
