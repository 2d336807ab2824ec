// Package ui prints coloured messages for the command line tool.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, format string, args ...any) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

// PrintError prints an error message
func PrintError(w io.Writer, format string, args ...any) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, format string, args ...any) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, format string, args ...any) {
	_, _ = infoColor.Fprintf(w, "ℹ %s\n", fmt.Sprintf(format, args...))
}
