// Package style defines the visual styling for rigup's terminal
// output: lipgloss styles for structured text, pterm prefixes for
// status lines, and color handling for non-interactive output.
package style

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/rigup/pkg/errors"
)

// Adaptive colors that adjust to light and dark terminal themes
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "243", Dark: "248"}
	AccentColor  = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	NameStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Setup disables colored output when stdout is not a terminal or the
// environment asks for no color. Called once from the CLI before any
// rendering happens.
func Setup() {
	if termenv.EnvNoColor() || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// Indent indents every line of s by level * two spaces
func Indent(s string, level int) string {
	pad := strings.Repeat("  ", level)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// RenderError renders an error message, surfacing the error code for
// coded errors
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	var rigupErr *errors.RigupError
	if stderrors.As(err, &rigupErr) {
		return fmt.Sprintf("%s Error [%s]: %s",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(string(rigupErr.Code)),
			err.Error())
	}

	return fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
}

// RenderSuccess renders a success status line
func RenderSuccess(message string) string {
	return fmt.Sprintf("%s %s", pterm.Success.Prefix.Text, message)
}
