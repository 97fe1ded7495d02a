// Package layout computes an xrandr arrangement from detected display
// hardware. Exactly two connected outputs get stacked: the narrower
// one becomes the primary display, centered directly beneath the wider
// one. Any other count falls back to xrandr's own auto-detection.
package layout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AutoCommand delegates enumeration and placement to the display subsystem
const AutoCommand = "xrandr --auto"

// QueryCommand reports the current display adapter state
const QueryCommand = "xrandr -q --current"

var (
	connectedRe  = regexp.MustCompile(`^([\w-]+) connected`)
	resolutionRe = regexp.MustCompile(`(\d+)x(\d+)`)
)

// Monitor is a detected display output. Monitors are compared for
// layout purposes by width alone, via WidthLess, never by identity.
type Monitor struct {
	Name    string
	Width   int
	Height  int
	X       int
	Y       int
	Primary bool
}

// Clause serializes the monitor as an xrandr placement clause
func (m Monitor) Clause() string {
	primary := ""
	if m.Primary {
		primary = " --primary"
	}
	return fmt.Sprintf("--output %s%s --mode %dx%d --pos %dx%d",
		m.Name, primary, m.Width, m.Height, m.X, m.Y)
}

// WidthLess is the width-only ordering used for layout decisions
func WidthLess(a, b Monitor) bool {
	return a.Width < b.Width
}

// ParseMonitors extracts connected outputs from xrandr query output.
// An output line matches "<identifier> connected"; its resolution is
// the first WxH token anywhere on the following line. A connected
// output with no parsable resolution is dropped, not an error.
func ParseMonitors(queryOutput string) []Monitor {
	lines := strings.Split(queryOutput, "\n")
	var monitors []Monitor

	for i, line := range lines {
		match := connectedRe.FindStringSubmatch(line)
		if match == nil || i+1 >= len(lines) {
			continue
		}

		res := resolutionRe.FindStringSubmatch(lines[i+1])
		if res == nil {
			continue
		}

		// Digits only per the pattern, so these cannot fail
		width, _ := strconv.Atoi(res[1])
		height, _ := strconv.Atoi(res[2])

		monitors = append(monitors, Monitor{
			Name:   match[1],
			Width:  width,
			Height: height,
		})
	}

	return monitors
}

// Plan computes the display-configuration command for the given xrandr
// query output. With anything other than exactly two detected monitors
// it returns AutoCommand verbatim.
//
// With two monitors the narrower one ("below") becomes primary and is
// centered beneath the wider one ("above"): x = above.Width/2 -
// below.Width/2, y = above.Height. Go's integer division truncates
// toward zero; both operands are non-negative here since below is
// never wider than above, so this matches floor division. On equal
// widths the second-detected output is treated as the narrower one
// and becomes primary.
func Plan(queryOutput string) string {
	monitors := ParseMonitors(queryOutput)
	if len(monitors) != 2 {
		return AutoCommand
	}

	below, above := 1, 0
	if !(monitors[below].Width <= monitors[above].Width) {
		below, above = above, below
	}

	monitors[below].Primary = true
	monitors[below].X = monitors[above].Width/2 - monitors[below].Width/2
	monitors[below].Y = monitors[above].Height

	// Clauses are emitted in original detection order
	clauses := make([]string, 0, len(monitors))
	for _, m := range monitors {
		clauses = append(clauses, m.Clause())
	}
	return "xrandr " + strings.Join(clauses, " ")
}
