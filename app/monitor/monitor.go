package monitor

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// Monitor holds the pixel geometry of one attached display.
type Monitor struct {
	Width  int
	Height int
}

// Provider enumerates the currently attached displays.
type Provider interface {
	Detect() ([]Monitor, error)
}

// StaticProvider returns a fixed geometry, for headless or scripted use.
type StaticProvider struct {
	Monitors []Monitor
}

func (p *StaticProvider) Detect() ([]Monitor, error) {
	return p.Monitors, nil
}

// geometry of a connected output, e.g. "1920x1080+0+0"
var geometryRe = regexp.MustCompile(` connected(?: primary)? (\d+)x(\d+)\+\d+\+\d+`)

// XRandrProvider detects displays by parsing `xrandr --query` output.
type XRandrProvider struct{}

func (p *XRandrProvider) Detect() ([]Monitor, error) {
	output, err := exec.Command("xrandr", "--query").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run xrandr: %w", err)
	}

	monitors := parseXRandrOutput(string(output))
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no connected display found in xrandr output")
	}

	return monitors, nil
}

func parseXRandrOutput(output string) []Monitor {
	var monitors []Monitor

	for _, match := range geometryRe.FindAllStringSubmatch(output, -1) {
		width, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		height, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		monitors = append(monitors, Monitor{Width: width, Height: height})
	}

	return monitors
}
