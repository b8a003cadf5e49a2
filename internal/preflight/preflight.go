// Package preflight checks that everything a workflow shells out to is in place.
package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"time"
	"waykit/internal/env"
	"waykit/internal/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/go-rod/rod/lib/launcher"
)

type Result struct {
	Name   string
	OK     bool
	Detail string
}

// DaemonChecker reports whether the input daemon is running.
type DaemonChecker interface {
	Running(ctx context.Context) (bool, error)
}

type Checker struct {
	env    env.Env
	daemon DaemonChecker
	http   *resty.Client
	// lookPath resolves a program on PATH, swapped out in tests.
	lookPath func(file string) (string, error)
	// browserPath finds an installed chromium, swapped out in tests.
	browserPath func() (string, bool)
}

func NewChecker(e env.Env, daemon DaemonChecker, tel telemetry.API) Checker {
	client := resty.New().SetTimeout(10 * time.Second)
	// whatsapp web answers non-browser clients with an "update your browser" page
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, telemetry.NewScopedAPI("preflight", tel))
	return Checker{
		env:         e,
		daemon:      daemon,
		http:        client,
		lookPath:    exec.LookPath,
		browserPath: launcher.LookPath,
	}
}

func (c Checker) checkDaemon(ctx context.Context) Result {
	res := Result{Name: "ydotoold"}
	running, err := c.daemon.Running(ctx)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	res.OK = running
	res.Detail = "not running, run `waykit daemon restart`"
	if running {
		res.Detail = "running"
	}
	return res
}

func (c Checker) checkProgram(name string) Result {
	res := Result{Name: name}
	path, err := c.lookPath(name)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	res.OK = true
	res.Detail = path
	return res
}

func (c Checker) checkBrowser() Result {
	res := Result{Name: "browser"}
	if c.env.BrowserBin != "" {
		res = c.checkProgram(c.env.BrowserBin)
		res.Name = "browser"
		return res
	}
	path, ok := c.browserPath()
	if !ok {
		// rod downloads a revision of chromium on first launch
		res.OK = true
		res.Detail = "none installed, one will be downloaded on first launch"
		return res
	}
	res.OK = true
	res.Detail = path
	return res
}

func (c Checker) checkReachable(ctx context.Context) Result {
	res := Result{Name: "whatsapp web"}
	url := env.DefaultConfig().BaseURL
	if c.env.BaseURL != "" {
		url = c.env.BaseURL
	}
	resp, err := c.http.R().SetContext(ctx).Head(url)
	if err != nil {
		res.Detail = err.Error()
		return res
	}
	res.OK = !resp.IsError()
	res.Detail = fmt.Sprintf("%s %s", url, resp.Status())
	return res
}

func (c Checker) checkProfile() Result {
	res := Result{Name: "profile", OK: true}
	if c.env.FirstRun() {
		res.Detail = fmt.Sprintf("%s missing, the next run will wait for a qr code login", c.env.ProfileDir)
		return res
	}
	res.Detail = c.env.ProfileDir
	return res
}

// Check runs every check in order, a failing check never stops the others.
func (c Checker) Check(ctx context.Context) []Result {
	return []Result{
		c.checkDaemon(ctx),
		c.checkProgram("ydotool"),
		c.checkBrowser(),
		c.checkReachable(ctx),
		c.checkProfile(),
	}
}

// AllOK is true if every result passed.
func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
