package whatsapp

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CaptureChat loads the chat with `phone` without sending anything and saves
// the rendered page to the snapshot path. `message` only pre-fills the
// compose box.
//
// On the first run the browser is shown on the landing page so the user can
// log in, on later runs it is headless.
func (c Client) CaptureChat(ctx context.Context, phone, message string) (err error) {
	ctx, span := tracer.Start(ctx, "CaptureChat")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to capture chat")
			c.tel.ReportBroken(report_client_capture_chat, err)
		}
		span.End()
	}()

	firstRun := c.env.FirstRun()
	span.SetAttributes(attribute.Bool("first_run", firstRun))

	slog.Info("launching browser with persistent profile", "profile", c.env.ProfileDir)
	page, err := c.launcher.Launch(ctx, LaunchOptions{
		ProfileDir: c.env.ProfileDir,
		Headless:   !firstRun,
		Viewport:   c.env.Screen,
		Bin:        c.env.BrowserBin,
	})
	if err != nil {
		return err
	}
	defer c.close(page)

	if firstRun {
		slog.Info("first time run, please scan the qr code", "wait", LoginWait)
		err = page.Navigate(ctx, HomeURL(c.env.BaseURL), NavigationTimeout)
		if err != nil {
			return fmt.Errorf("open whatsapp web: %w", err)
		}
		err = c.sleep(ctx, LoginWait)
		if err != nil {
			return err
		}
		slog.Info("assuming login is done, session saved")
	} else {
		err = page.Navigate(ctx, SendURL(c.env.BaseURL, phone, message), NavigationTimeout)
		if err != nil {
			return fmt.Errorf("open chat: %w", err)
		}
		slog.Info("profile exists, waiting for page to fully load")
	}

	err = c.waitLoaded(ctx, page, captureLoadPause)
	if err != nil {
		return err
	}

	err = c.saveSnapshot(ctx, page)
	if err != nil {
		return err
	}
	captureCounter.Add(ctx, 1)
	return nil
}
