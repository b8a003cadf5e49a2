// Package ydotool drives the ydotoold input daemon through the ydotool CLI.
//
// Every directive is fire-and-forget, a failed injection is reported as a
// warning and otherwise ignored.
package ydotool

import (
	"context"
	"fmt"
	"strconv"
	"waykit/internal/telemetry"
	"waykit/lib/osutil"
)

const (
	report_client_type  = "client.type"
	report_client_key   = "client.key"
	report_client_click = "client.click"
	report_client_move  = "client.move"
)

const (
	// KeyEnter is the linux input event code for the enter key.
	KeyEnter = 28

	KeyReleased = 0
	KeyPressed  = 1

	ButtonLeft = 0
)

type Client struct {
	bin    string
	runner osutil.Runner
	tel    telemetry.API
}

// NewClient creates a Client, `bin` defaults to "ydotool" when empty.
func NewClient(bin string, runner osutil.Runner, tel telemetry.API) Client {
	if bin == "" {
		bin = "ydotool"
	}
	return Client{
		bin:    bin,
		runner: runner,
		tel:    telemetry.NewScopedAPI("ydotool", tel),
	}
}

func (c Client) run(ctx context.Context, id string, args ...string) {
	err := c.runner.Run(ctx, c.bin, args...)
	if err != nil {
		c.tel.ReportWarning(id, err)
	}
}

// Type types the literal string.
func (c Client) Type(ctx context.Context, text string) {
	c.run(ctx, report_client_type, "type", text)
}

// Key sets a key to the given state, 1 for pressed, 0 for released.
func (c Client) Key(ctx context.Context, code, state int) {
	c.run(ctx, report_client_key, "key", fmt.Sprintf("%d:%d", code, state))
}

// Click clicks the mouse button with the given index, 0 is the left button.
func (c Client) Click(ctx context.Context, button int) {
	c.run(ctx, report_client_click, "click", "0xC"+strconv.Itoa(button))
}

// Move moves the pointer to absolute screen coordinates.
func (c Client) Move(ctx context.Context, x, y int) {
	c.run(
		ctx,
		report_client_move,
		"mousemove", "--absolute",
		"-x", strconv.Itoa(x),
		"-y", strconv.Itoa(y),
	)
}

// Enter presses and releases the enter key.
func (c Client) Enter(ctx context.Context) {
	c.Key(ctx, KeyEnter, KeyPressed)
	c.Key(ctx, KeyEnter, KeyReleased)
}

// LeftClick clicks the left mouse button.
func (c Client) LeftClick(ctx context.Context) {
	c.Click(ctx, ButtonLeft)
}
