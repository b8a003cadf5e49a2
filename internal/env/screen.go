package env

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"waykit/internal/telemetry"
	"waykit/lib/osutil"
)

const report_env_resolve_screen = "env.resolve-screen"

var DefaultScreen = Screen{Width: 1920, Height: 1080}

var xrandrCurrent = regexp.MustCompile(`current (\d+) x (\d+)`)

func parseXrandr(out []byte) (Screen, error) {
	match := xrandrCurrent.FindSubmatch(out)
	if match == nil {
		return Screen{}, fmt.Errorf("no current resolution in xrandr output")
	}
	width, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return Screen{}, err
	}
	height, err := strconv.Atoi(string(match[2]))
	if err != nil {
		return Screen{}, err
	}
	return Screen{Width: width, Height: height}, nil
}

// ResolveScreen returns the configured screen if it is complete, otherwise
// it asks xrandr, otherwise it falls back to DefaultScreen.
func ResolveScreen(ctx context.Context, configured Screen, runner osutil.Runner, tel telemetry.API) Screen {
	if configured.Width > 0 && configured.Height > 0 {
		return configured
	}

	out, err := runner.Output(ctx, "xrandr", "--current")
	if err == nil {
		var screen Screen
		screen, err = parseXrandr(out)
		if err == nil {
			return screen
		}
	}
	tel.ReportWarning(report_env_resolve_screen, err, DefaultScreen)
	return DefaultScreen
}
