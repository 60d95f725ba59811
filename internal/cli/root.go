// Package cli implements the cobra-based command line for fcal.
//
// fcal has a single root command that takes an optional date expression.
// This file defines the command, its flags, and the error/exit-code
// handling. The resolve-and-render flow lives in calendar.go and the
// text/JSON writers in output.go.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/fcal/internal/model"
)

// Global flag variables. They are bound in NewRootCommand, which resets
// them to their defaults each time a command tree is built.
var (
	// jsonOutput prints the resolved months as JSON instead of grids.
	jsonOutput bool

	// verbose enables [verbose] trace lines on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the fcal command.
func NewRootCommand() *cobra.Command {
	flags := &calendarFlags{}

	rootCmd := &cobra.Command{
		Use:   "fcal [DATE_INPUT]",
		Short: "Display a calendar for a month, quarter, or (fiscal) year",
		Long: `fcal prints one or more month calendars to the terminal.

DATE_INPUT selects the months to show (case-insensitive):
  2024, 24       the calendar year (two-digit years use the current century)
  Q1 .. Q4       a quarter of the current year
  FY2024, FY24   a fiscal year, labelled by the year it ends in
                 (FY2024 = July 2023 - June 2024)
  FY24Q1         a fiscal quarter (Q1 = July, Q2 = October,
                 Q3 = January, Q4 = April); FYQ2 uses the current fiscal year

Without DATE_INPUT the current month is shown, or the month selected
with --year/--month. --months-before/--months-after widen that view.

Examples:
  fcal
  fcal -B 1 -A 1
  fcal -y 2024 -m 3
  fcal Q2
  fcal FY25Q3 --first-day-of-week sunday
  fcal 2024 --color=never`,

		Args: cobra.MaximumNArgs(1),

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, args, flags)
		},
	}

	// Declaring "version" ourselves moves its shorthand from cobra's
	// default -v to -V; cobra still handles the flag.
	rootCmd.Flags().BoolP("version", "V", false, "Print version information and exit")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the resolved months in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	bindCalendarFlags(rootCmd, flags)

	return rootCmd
}

// Execute runs the root command and exits with the code matching the
// failure. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(reportError(os.Stderr, err)))
	}
}

// reportError writes err to w and returns the exit code it maps to.
//
// Resolver failures reach here as a CLIError whose Err wraps one of the
// model.Err* kinds, so the code tells invalid expressions, conflicting
// flags, and out-of-range values apart. Errors raised by cobra itself
// (unknown flags, too many arguments) carry no code and exit with 1.
func reportError(w io.Writer, err error) model.ExitCode {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Code, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}
	printError(w, model.ExitGeneralError, err.Error(), nil)
	return model.ExitGeneralError
}

// errorJSON is the --json error shape written to stderr.
type errorJSON struct {
	Error errorBody `json:"error"`
}

// errorBody describes one failure. Detail holds the underlying error text,
// e.g. `conflicting input: "Q1" already fixes the months shown; ...`,
// whose leading words name the error kind. Code repeats the exit status.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Code    int    `json:"code"`
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, code model.ExitCode, message string, underlying error) {
	if jsonOutput {
		body := errorBody{Message: message, Code: int(code)}
		if underlying != nil {
			body.Detail = underlying.Error()
		}
		// Errors go to stderr even in JSON mode; stdout carries only the
		// calendar, so a failed run never leaves partial JSON there.
		data, _ := json.MarshalIndent(errorJSON{Error: body}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	// Text format: "Error: <message>: <detail>".
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog prints a [verbose] trace line to stderr when -v is set. The
// calendar flow uses it to show where the week start, color mode, and
// config file came from.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput reports whether --json was given. It also turns off the
// today highlight, since JSON output carries no styling.
func IsJSONOutput() bool {
	return jsonOutput
}
