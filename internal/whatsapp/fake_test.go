package whatsapp

import (
	"context"
	"fmt"
	"time"
)

// events is shared by the fake page, launcher and input so tests can assert
// on the order of everything a workflow does.
type events struct {
	log []string
}

func (e *events) add(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

type fakePage struct {
	ev       *events
	html     string
	waitErr  error
	pressErr error
	closed   bool
}

func (p *fakePage) Navigate(_ context.Context, url string, timeout time.Duration) error {
	p.ev.add("navigate %s %s", url, timeout)
	return nil
}

func (p *fakePage) WaitVisible(_ context.Context, selector string, timeout time.Duration) error {
	p.ev.add("wait %s %s", selector, timeout)
	return p.waitErr
}

func (p *fakePage) PressEnter(_ context.Context, selector string) error {
	p.ev.add("press-enter %s", selector)
	return p.pressErr
}

func (p *fakePage) HTML(context.Context) (string, error) {
	p.ev.add("html")
	return p.html, nil
}

func (p *fakePage) Close() error {
	p.ev.add("close")
	p.closed = true
	return nil
}

type fakeLauncher struct {
	ev       *events
	page     *fakePage
	launched []LaunchOptions
	err      error
}

func (l *fakeLauncher) Launch(_ context.Context, opts LaunchOptions) (Page, error) {
	l.ev.add("launch headless=%t", opts.Headless)
	l.launched = append(l.launched, opts)
	if l.err != nil {
		return nil, l.err
	}
	return l.page, nil
}

type fakeInput struct {
	ev *events
}

func (i fakeInput) Enter(context.Context) {
	i.ev.add("input enter")
}

func (i fakeInput) LeftClick(context.Context) {
	i.ev.add("input left-click")
}

func (i fakeInput) Move(_ context.Context, x, y int) {
	i.ev.add("input move %d %d", x, y)
}
