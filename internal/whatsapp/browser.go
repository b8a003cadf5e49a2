package whatsapp

import (
	"context"
	"time"
	"waykit/internal/env"
)

type LaunchOptions struct {
	// ProfileDir is the persistent user data directory, it is created by the
	// browser when missing.
	ProfileDir string
	Headless   bool
	Maximized  bool
	Viewport   env.Screen
	// Bin overrides the browser binary.
	Bin string
}

// Page is the single browser tab a workflow drives.
//
// note: fault injection point
type Page interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// WaitVisible waits for an element matching the selector to exist, a
	// timeout is reported as context.DeadlineExceeded.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// PressEnter dispatches an enter key press to the element matching the selector.
	PressEnter(ctx context.Context, selector string) error
	HTML(ctx context.Context) (string, error)
	// Close closes the browser, the profile directory is kept.
	Close() error
}

type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Page, error)
}
