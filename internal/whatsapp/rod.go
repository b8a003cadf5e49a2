package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

const pressTimeout = 30 * time.Second

// RodLauncher launches chromium through go-rod with a persistent profile.
type RodLauncher struct{}

func (RodLauncher) Launch(ctx context.Context, opts LaunchOptions) (Page, error) {
	launch := launcher.New().
		Context(ctx).
		UserDataDir(opts.ProfileDir).
		Headless(opts.Headless)
	if opts.Bin != "" {
		launch = launch.Bin(opts.Bin)
	}
	if opts.Maximized {
		launch = launch.Set(flags.Flag("start-maximized"))
	}

	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	err = browser.Connect()
	if err != nil {
		launch.Kill()
		return nil, fmt.Errorf("connect to chromium: %w", err)
	}

	page, err := firstPage(browser)
	if err != nil {
		_ = browser.Close()
		return nil, err
	}

	if opts.Viewport.Width > 0 && opts.Viewport.Height > 0 {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.Viewport.Width,
			Height:            opts.Viewport.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			_ = browser.Close()
			return nil, fmt.Errorf("set viewport: %w", err)
		}
	}

	return rodPage{browser: browser, page: page}, nil
}

// a persistent profile restores its last tab, reuse it if there is one.
func firstPage(browser *rod.Browser) (*rod.Page, error) {
	pages, err := browser.Pages()
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	if len(pages) > 0 {
		return pages.First(), nil
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	return page, nil
}

type rodPage struct {
	browser *rod.Browser
	page    *rod.Page
}

func (p rodPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	err := page.Navigate(url)
	if err != nil {
		return err
	}
	return page.WaitLoad()
}

// WaitVisible waits until selector matches an element that is displayed,
// an element that exists but stays hidden still times out.
func (p rodPage) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	el, err := page.Element(selector)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("wait for %s: %w", selector, context.DeadlineExceeded)
	}
	return err
}

func (p rodPage) PressEnter(ctx context.Context, selector string) error {
	page := p.page.Context(ctx).Timeout(pressTimeout)
	defer page.CancelTimeout()

	el, err := page.Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	return el.Type(input.Enter)
}

func (p rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// Close only closes the browser. launcher.Cleanup is never called since it
// would delete the profile directory.
func (p rodPage) Close() error {
	return p.browser.Close()
}
