package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"waykit/lib/htmlutil"
)

// ErrMalformedMeta is returned when a data-pre-plain-text attribute does not
// look like "[<timestamp>] <sender>: ".
var ErrMalformedMeta = errors.New("malformed message metadata")

var metaPattern = regexp.MustCompile(`^\[([^\[\]]+)\] (.+): $`)

// Meta is the parsed form of the data-pre-plain-text attribute WhatsApp Web
// embeds on every message container.
type Meta struct {
	// Raw is the attribute exactly as it appeared in the page.
	Raw       string
	Timestamp string
	Sender    string
}

// ParseMeta parses "[10:21, 3/14/2024] Alice: " into its timestamp and sender.
func ParseMeta(raw string) (Meta, error) {
	match := metaPattern.FindStringSubmatch(raw)
	if match == nil {
		return Meta{}, fmt.Errorf("%w: %q", ErrMalformedMeta, raw)
	}
	sender := htmlutil.CleanText(match[2])
	if sender == "" {
		return Meta{}, fmt.Errorf("%w: empty sender in %q", ErrMalformedMeta, raw)
	}
	return Meta{
		Raw:       raw,
		Timestamp: strings.TrimSpace(match[1]),
		Sender:    sender,
	}, nil
}

// the order matters, day-first dates are only tried after month-first ones.
var timestampLayouts = []string{
	"15:04, 1/2/2006",
	"3:04 PM, 1/2/2006",
	"15:04, 2006-01-02",
	"15:04, 2.1.2006",
	"15:04, 2/1/2006",
}

// Time parses the timestamp in the local timezone, the boolean is false if
// none of the known WhatsApp layouts matched.
func (m Meta) Time() (time.Time, bool) {
	ts := htmlutil.CleanText(m.Timestamp)
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, ts, time.Local)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
