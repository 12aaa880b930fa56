package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Banner is printed above every failure.
const Banner = "+-------------------------------------------+\n" +
	"| There was an error creating the changelog |\n" +
	"+-------------------------------------------+"

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	bannerFmt   = color.New(color.FgRed).SprintFunc()
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatError formats a CLIError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, true)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

// FormatFailure formats the banner followed by the error.
func FormatFailure(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}
	var sb strings.Builder
	if useColors {
		sb.WriteString(bannerFmt(Banner))
	} else {
		sb.WriteString(Banner)
	}
	sb.WriteString("\n\n")
	sb.WriteString(formatError(err, useColors))
	return sb.String()
}

func formatError(err *CLIError, useColors bool) string {
	var sb strings.Builder

	// Error category and message
	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(categoryFmt(err.Category.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Message))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Category.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Message)
	}
	sb.WriteString("\n")

	// Remediation steps
	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  ")
				sb.WriteString(bullet("•"))
				sb.WriteString(" ")
			} else {
				sb.WriteString("  • ")
			}
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintFailure prints the banner and a formatted CLIError to the given writer.
func FprintFailure(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatFailure(err, !color.NoColor))
}
