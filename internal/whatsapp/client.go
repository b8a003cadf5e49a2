// Package whatsapp automates WhatsApp Web: it sends messages through the
// compose deep link and saves the rendered chat page for offline parsing.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"
	"waykit/internal/env"
	"waykit/internal/telemetry"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("waykit.internal.whatsapp")
var meter = otel.Meter("waykit.internal.whatsapp")
var sentCounter, _ = meter.Int64Counter(
	"messages_sent",
	metric.WithDescription("Messages handed to WhatsApp Web."),
)
var captureCounter, _ = meter.Int64Counter(
	"pages_captured",
	metric.WithDescription("Chat pages saved to the snapshot file."),
)

const (
	report_client_send_message = "client.send-message"
	report_client_capture_chat = "client.capture-chat"
	report_client_wait_loaded  = "client.wait-loaded"
	report_client_schedule     = "client.schedule"
	report_client_close        = "client.close"
)

const (
	// MessageBoxSelector appears once a chat has rendered.
	MessageBoxSelector = "div[role='textbox']"
	// ComposeSelector is the message field that receives the programmatic enter press.
	ComposeSelector = "div[contenteditable='true'][aria-label='Type a message']"
)

const (
	NavigationTimeout = 60 * time.Second
	MessageBoxTimeout = 60 * time.Second
	// LoginWait gives the user time to scan the QR code on the first run.
	LoginWait = 40 * time.Second

	clickPause       = 2 * time.Second
	sendLoadedPause  = 5 * time.Second
	enterSendPause   = 5 * time.Second
	silentSendPause  = 2 * time.Second
	captureLoadPause = 3 * time.Second
)

// Click target relative to the bottom right corner of the screen, it lands
// inside the chat so the physical enter goes to the right window.
const (
	focusOffsetX = 1120
	focusOffsetY = 780
)

// Input injects physical input events.
type Input interface {
	Enter(ctx context.Context)
	LeftClick(ctx context.Context)
	Move(ctx context.Context, x, y int)
}

type Client struct {
	env      env.Env
	launcher Launcher
	input    Input
	tel      telemetry.API
}

func NewClient(e env.Env, launcher Launcher, input Input) Client {
	tel := e.Tel
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return Client{
		env:      e,
		launcher: launcher,
		input:    input,
		tel:      telemetry.NewScopedAPI("whatsapp", tel),
	}
}

func (c Client) sleep(ctx context.Context, d time.Duration) error {
	return c.env.Sleep(ctx, d)
}

func (c Client) close(page Page) {
	err := page.Close()
	if err != nil {
		c.tel.ReportWarning(report_client_close, err)
		return
	}
	slog.Info("done, browser closed")
}

// waitLoaded waits for the message box. A timeout is logged and swallowed,
// the caller carries on as if the page had loaded.
func (c Client) waitLoaded(ctx context.Context, page Page, pause time.Duration) error {
	err := page.WaitVisible(ctx, MessageBoxSelector, MessageBoxTimeout)
	if err == nil {
		slog.Info("whatsapp web fully loaded")
		return c.sleep(ctx, pause)
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		slog.Warn("timeout: whatsapp web did not load properly")
		c.tel.ReportWarning(report_client_wait_loaded, err)
		return nil
	}
	return err
}

func (c Client) saveSnapshot(ctx context.Context, page Page) error {
	html, err := page.HTML(ctx)
	if err != nil {
		return fmt.Errorf("read page html: %w", err)
	}
	err = WriteSnapshot(c.env.SnapshotPath, html)
	if err != nil {
		return err
	}
	slog.Info("whatsapp page html saved", "path", c.env.SnapshotPath)
	return nil
}

// WriteSnapshot replaces the snapshot file with the given html, readers never
// observe a partially written page.
func WriteSnapshot(path, html string) error {
	suffix, err := random.String(8)
	if err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.%s.tmp", path, suffix)
	err = os.WriteFile(tmp, []byte(html), 0644)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	err = os.Rename(tmp, path)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
