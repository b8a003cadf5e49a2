package whatsapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type SendOptions struct {
	// Phone is the destination in international format without the leading +.
	Phone   string
	Message string
	// Silent runs the browser headless and presses enter programmatically
	// instead of through the input daemon.
	Silent bool
	// Scheduled is an optional HH:MM:SS target, it is ignored on the first run.
	Scheduled string
	// Instant is how long to keep the browser open after sending.
	Instant time.Duration
	// Log turns on progress logging.
	Log bool
}

func (o SendOptions) logf(msg string, args ...any) {
	if o.Log {
		slog.Info(msg, args...)
	}
}

// scheduleDelay returns 0 when the scheduled time is malformed.
func (c Client) scheduleDelay(opts SendOptions) time.Duration {
	delay, err := ScheduleDelay(c.env.Started, opts.Scheduled)
	if err != nil {
		c.tel.ReportWarning(report_client_schedule, err)
		return 0
	}
	opts.logf("sleeping until scheduled time", "delay", delay)
	return delay
}

// SendMessage opens the chat with opts.Phone, sends opts.Message and saves the
// resulting page to the snapshot path.
func (c Client) SendMessage(ctx context.Context, opts SendOptions) (err error) {
	ctx, span := tracer.Start(ctx, "SendMessage", trace.WithAttributes(
		attribute.Bool("silent", opts.Silent),
		attribute.String("scheduled", opts.Scheduled),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to send message")
			c.tel.ReportBroken(report_client_send_message, err)
		}
		span.End()
	}()

	firstRun := c.env.FirstRun()
	span.SetAttributes(attribute.Bool("first_run", firstRun))

	slog.Info("launching browser with persistent profile", "profile", c.env.ProfileDir)
	page, err := c.launcher.Launch(ctx, LaunchOptions{
		ProfileDir: c.env.ProfileDir,
		Headless:   opts.Silent,
		Maximized:  true,
		Viewport:   c.env.Screen,
		Bin:        c.env.BrowserBin,
	})
	if err != nil {
		return err
	}
	defer c.close(page)

	var delay time.Duration
	if !firstRun && opts.Scheduled != "" {
		delay = c.scheduleDelay(opts)
	}
	err = c.sleep(ctx, delay)
	if err != nil {
		return err
	}

	err = page.Navigate(ctx, SendURL(c.env.BaseURL, opts.Phone, opts.Message), NavigationTimeout)
	if err != nil {
		return fmt.Errorf("open chat: %w", err)
	}

	if firstRun {
		opts.logf("first time run, please scan the qr code", "wait", LoginWait)
		err = c.sleep(ctx, LoginWait)
		if err != nil {
			return err
		}
	} else {
		opts.logf("profile exists, waiting for page to fully load")
		c.input.Move(ctx, c.env.Screen.Width-focusOffsetX, c.env.Screen.Height-focusOffsetY)
		err = c.sleep(ctx, clickPause)
		if err != nil {
			return err
		}
		c.input.LeftClick(ctx)
	}

	err = c.waitLoaded(ctx, page, sendLoadedPause)
	if err != nil {
		return err
	}

	if !opts.Silent {
		c.input.Enter(ctx)
		err = c.sleep(ctx, enterSendPause)
	} else {
		err = page.PressEnter(ctx, ComposeSelector)
		if err != nil {
			return fmt.Errorf("press enter: %w", err)
		}
		err = c.sleep(ctx, silentSendPause)
	}
	if err != nil {
		return err
	}

	err = c.saveSnapshot(ctx, page)
	if err != nil {
		return err
	}
	sentCounter.Add(ctx, 1)

	if opts.Instant > 0 {
		return c.sleep(ctx, opts.Instant)
	}
	return nil
}
