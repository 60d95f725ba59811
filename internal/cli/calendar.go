package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shinji-kodama/fcal/internal/calendar"
	"github.com/shinji-kodama/fcal/internal/config"
	"github.com/shinji-kodama/fcal/internal/datexpr"
	"github.com/shinji-kodama/fcal/internal/model"
	"github.com/shinji-kodama/fcal/internal/terminal"
	"github.com/shinji-kodama/fcal/internal/weekstart"
)

// Seams replaced by tests.
var (
	// now returns the current time; "today" is taken from it.
	now = time.Now

	// systemWeekStart returns the OS first-day-of-week provider.
	systemWeekStart = weekstart.System

	// colorEnabled resolves a ColorMode for stdout.
	colorEnabled = terminal.ColorEnabled
)

// calendarFlags holds the flag values for the root command.
type calendarFlags struct {
	year         int
	month        int
	monthsBefore int
	monthsAfter  int

	// firstDay is the raw --first-day-of-week value.
	firstDay string

	// color is the raw --color value: always, auto, or never.
	color string

	// configPath overrides the default configuration file location.
	configPath string
}

// bindCalendarFlags registers the calendar flags on cmd.
func bindCalendarFlags(cmd *cobra.Command, flags *calendarFlags) {
	fs := cmd.Flags()
	fs.IntVarP(&flags.year, "year", "y", 0, "Year to display (cannot be combined with DATE_INPUT)")
	fs.IntVarP(&flags.month, "month", "m", 0, "Month to display, 1-12 (cannot be combined with DATE_INPUT)")
	fs.IntVarP(&flags.monthsBefore, "months-before", "B", 0, "Number of months to show before the selected month")
	fs.IntVarP(&flags.monthsAfter, "months-after", "A", 0, "Number of months to show after the selected month")
	fs.StringVarP(&flags.firstDay, "first-day-of-week", "f", "",
		"First day of the week: a name (Sunday), abbreviation (Su), or 1 (Sunday) to 7 (Saturday); defaults to the system preference")
	fs.StringVar(&flags.color, "color", string(model.ColorAuto), "Highlight today: always, auto, or never")
	fs.StringVar(&flags.configPath, "config", "", "Path to a config file (default: <user config dir>/fcal/config.yaml)")

	// A bare --color means --color=always.
	fs.Lookup("color").NoOptDefVal = string(model.ColorAlways)
}

// runCalendar is the main logic function for the root command. It loads
// configuration, settles the week start and color mode, resolves the date
// input, and writes the calendar.
func runCalendar(cmd *cobra.Command, args []string, flags *calendarFlags) error {
	fs := cmd.Flags()

	// Step 1: Load the configuration file, if any.
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	// Step 2: Determine the first day of the week.
	ws, err := resolveWeekStart(fs, flags, cfg)
	if err != nil {
		return err
	}

	// Step 3: Determine whether today may be highlighted.
	mode, err := resolveColorMode(fs, flags, cfg)
	if err != nil {
		return err
	}
	highlight := !IsJSONOutput() && colorEnabled(mode)
	VerboseLog("Color mode %s, highlighting %t", mode, highlight)

	// Step 4: Resolve the date input into a span of months.
	today := model.DateOf(now())
	resolver, err := datexpr.NewResolver(cfg.FiscalYearStartMonth)
	if err != nil {
		return model.WrapCLIError(model.ExitConfigError, "invalid fiscal year configuration", err)
	}

	in := datexpr.Input{
		Year:         changedInt(fs, "year", flags.year),
		Month:        changedInt(fs, "month", flags.month),
		MonthsBefore: changedInt(fs, "months-before", flags.monthsBefore),
		MonthsAfter:  changedInt(fs, "months-after", flags.monthsAfter),
		Today:        today.CalendarMonth(),
	}
	if len(args) == 1 {
		in.Expression = args[0]
	}

	span, err := resolver.Resolve(in)
	if err != nil {
		return model.WrapCLIError(model.ExitCodeFor(err), "cannot resolve dates", err)
	}
	VerboseLog("Resolved span: %s, %d before, %d after (%d months)",
		span.Anchor, span.MonthsBefore, span.MonthsAfter, span.Len())

	// Step 5: Render and print.
	renderer := calendar.NewRenderer(calendar.Options{
		WeekStart:    ws,
		Highlight:    highlight,
		Today:        today,
		MonthsPerRow: cfg.MonthsPerRow,
	})
	return printCalendar(cmd.OutOrStdout(), renderer, span, ws)
}

// loadConfig reads the explicit --config file, or the default file when
// one exists.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		VerboseLog("Loaded config from %s", cfg.Path)
		return cfg, nil
	}

	dir, err := config.DefaultDir()
	if err != nil {
		VerboseLog("No user config directory (%v); using defaults", err)
		return config.Defaults(), nil
	}
	cfg, err := config.LoadDefault(dir)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		VerboseLog("Loaded config from %s", cfg.Path)
	} else {
		VerboseLog("No config file in %s; using defaults", dir)
	}
	return cfg, nil
}

// resolveWeekStart applies flag > config > OS preference > Monday.
func resolveWeekStart(fs *pflag.FlagSet, flags *calendarFlags, cfg *config.Config) (model.WeekStart, error) {
	if fs.Changed("first-day-of-week") {
		ws, err := model.ParseWeekStart(flags.firstDay)
		if err != nil {
			return 0, model.WrapCLIError(model.ExitGeneralError, "invalid --first-day-of-week", err)
		}
		VerboseLog("First day of week %s (from flag)", ws)
		return ws, nil
	}
	if cfg.WeekStart != nil {
		VerboseLog("First day of week %s (from config)", *cfg.WeekStart)
		return *cfg.WeekStart, nil
	}
	ws := weekstart.Preferred(systemWeekStart())
	VerboseLog("First day of week %s (from system preference, or the default)", ws)
	return ws, nil
}

// resolveColorMode applies flag > config > auto.
func resolveColorMode(fs *pflag.FlagSet, flags *calendarFlags, cfg *config.Config) (model.ColorMode, error) {
	if fs.Changed("color") || cfg.Color == "" {
		mode, err := model.ParseColorMode(flags.color)
		if err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "invalid --color", err)
		}
		return mode, nil
	}
	return cfg.Color, nil
}

// changedInt returns a pointer to value if the flag was given on the
// command line, and nil otherwise. The resolver needs the distinction:
// "-A 0" with a quarter token is still a conflict.
func changedInt(fs *pflag.FlagSet, name string, value int) *int {
	if !fs.Changed(name) {
		return nil
	}
	return &value
}
