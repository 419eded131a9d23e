package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// styler applies colour or passes text through unchanged.
type styler func(a ...interface{}) string

func plainStyle(a ...interface{}) string { return fmt.Sprint(a...) }

// FormatError formats a CLIError for the terminal. Colours follow fatih/color's
// own terminal detection (NO_COLOR, non-tty output).
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, true)
}

func formatError(err *CLIError, plain bool) string {
	style := func(s styler) styler {
		if plain {
			return plainStyle
		}
		return s
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		style(errorLabel)("Error"), style(categoryFmt)(err.Category.String()), style(errorMsg)(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", style(usageLabel)("Usage: "), style(usageText)(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", style(fixLabel)("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", style(bullet)("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a CLIError to w, plain when requested.
func FprintError(w io.Writer, err *CLIError, plain bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, formatError(err, plain))
}

// FprintAny prints err to w. Errors that are not CLIErrors are shown as Runtime errors.
func FprintAny(w io.Writer, err error, plain bool) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error(), Cause: err}
	}
	FprintError(w, cliErr, plain)
}
