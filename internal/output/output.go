// Package output provides styled terminal output helpers (success, error,
// warning, step lines) using lipgloss.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
)

// Success prints a success message
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Info prints an unstyled message
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Step announces the start of a long-running stage.
func Step(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, stepStyle.Render("==> "+fmt.Sprintf(format, args...)))
}

// Title prints a bold heading.
func Title(w io.Writer, text string) {
	fmt.Fprintln(w, titleStyle.Render(text))
}

// Hint prints a dimmed follow-up suggestion.
func Hint(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf(format, args...)))
}

// Status renders a fixed-width check marker like "[ OK ]".
func Status(ok bool, warn bool) string {
	switch {
	case ok:
		return successStyle.Render("[ OK ]")
	case warn:
		return warningStyle.Render("[WARN]")
	default:
		return errorStyle.Render("[MISS]")
	}
}

// Fail renders the marker for a check that ran and found a problem.
func Fail() string {
	return errorStyle.Render("[FAIL]")
}
