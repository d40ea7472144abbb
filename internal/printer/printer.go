// Package printer renders operator-facing status lines.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
)

var out io.Writer = os.Stdout

// SetOutput redirects Print* output; nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetNoColor disables ANSI styling for every render function.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

func Faint(text string) string   { return faintStyle.Render(text) }
func Bold(text string) string    { return boldStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }

// Transition renders "project old -> new".
func Transition(project, from, to string) string {
	return fmt.Sprintf("%s %s %s %s", Bold(project), Faint(from), Faint("->"), Success(to))
}

func PrintFaint(text string)   { fmt.Fprintln(out, Faint(text)) }
func PrintBold(text string)    { fmt.Fprintln(out, Bold(text)) }
func PrintSuccess(text string) { fmt.Fprintln(out, Success(text)) }
func PrintError(text string)   { fmt.Fprintln(out, Error(text)) }
func PrintWarning(text string) { fmt.Fprintln(out, Warning(text)) }
func PrintInfo(text string)    { fmt.Fprintln(out, Info(text)) }

// Println writes an unstyled line.
func Println(text string) { fmt.Fprintln(out, text) }

// Print writes text unchanged. Command results and tool output go through
// here so every command shares one output stream.
func Print(text string) error {
	_, err := fmt.Fprint(out, text)
	return err
}
