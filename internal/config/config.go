// Package config loads the optional fcal configuration file.
//
// The file may be YAML (config.yaml, config.yml) or JSON with comments
// (config.json, config.jsonc). JSONC is reduced to plain JSON with
// github.com/tidwall/jsonc before decoding with encoding/json; YAML is
// decoded with gopkg.in/yaml.v3. Unknown keys are rejected in both formats
// so typos surface instead of being silently ignored.
//
// Example config.yaml:
//
//	first_day_of_week: sunday
//	color: auto
//	fiscal_year_start_month: 10
//	months_per_row: 4
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/fcal/internal/calendar"
	"github.com/shinji-kodama/fcal/internal/datexpr"
	"github.com/shinji-kodama/fcal/internal/model"
)

const (
	// appDirName is the directory under the user config dir.
	appDirName = "fcal"

	// maxMonthsPerRow keeps lines within a reasonable terminal width.
	maxMonthsPerRow = 12
)

// defaultFileNames are tried in order inside the config directory.
var defaultFileNames = []string{"config.yaml", "config.yml", "config.json", "config.jsonc"}

// RawConfig is the on-disk shape of the configuration file. Empty or zero
// fields mean "not set".
type RawConfig struct {
	// FirstDayOfWeek uses the same syntax as --first-day-of-week.
	FirstDayOfWeek string `yaml:"first_day_of_week" json:"first_day_of_week"`

	// Color is one of always, auto, never.
	Color string `yaml:"color" json:"color"`

	// FiscalYearStartMonth is the month (1-12) fiscal years begin in.
	FiscalYearStartMonth int `yaml:"fiscal_year_start_month" json:"fiscal_year_start_month"`

	// MonthsPerRow caps the months rendered side by side.
	MonthsPerRow int `yaml:"months_per_row" json:"months_per_row"`
}

// Config is the validated configuration with defaults applied.
type Config struct {
	// Path is the file the configuration came from; empty when no file
	// was found and only defaults apply.
	Path string

	// WeekStart is nil when the file does not set a first day of week,
	// so the OS preference can be consulted next.
	WeekStart *model.WeekStart

	// Color is empty when the file does not set a color mode.
	Color model.ColorMode

	FiscalYearStartMonth int
	MonthsPerRow         int
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		FiscalYearStartMonth: datexpr.DefaultFiscalYearStartMonth,
		MonthsPerRow:         calendar.DefaultMonthsPerRow,
	}
}

// DefaultDir returns the directory searched for a configuration file,
// typically $XDG_CONFIG_HOME/fcal or ~/Library/Application Support/fcal.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// LoadDefault looks for a configuration file in dir. A missing file is not
// an error: Defaults() is returned instead.
func LoadDefault(dir string) (*Config, error) {
	for _, name := range defaultFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("cannot access config file %s", path), err)
		}
		return Load(path)
	}
	return Defaults(), nil
}

// Load reads and validates the configuration file at path.
//
// Returns a CLIError with ExitConfigError if the file is missing,
// malformed, or holds invalid values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	raw, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	cfg, err := raw.Validate()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid config file %s", path), err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes data according to the file extension ext (".yaml", ".yml",
// ".json" or ".jsonc").
func Parse(data []byte, ext string) (*RawConfig, error) {
	var raw RawConfig

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF, which just means "no settings".
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

	case ".json", ".jsonc":
		// Strip comments and trailing commas so hand-edited files parse.
		clean := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(clean)) == 0 {
			return &raw, nil
		}
		dec := json.NewDecoder(bytes.NewReader(clean))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml, .json or .jsonc)", ext)
	}

	return &raw, nil
}

// Validate checks every set field and applies defaults to unset ones.
func (r *RawConfig) Validate() (*Config, error) {
	cfg := Defaults()

	if r.FirstDayOfWeek != "" {
		ws, err := model.ParseWeekStart(r.FirstDayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("first_day_of_week: %w", err)
		}
		cfg.WeekStart = &ws
	}

	if r.Color != "" {
		mode, err := model.ParseColorMode(r.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		cfg.Color = mode
	}

	if r.FiscalYearStartMonth != 0 {
		if r.FiscalYearStartMonth < 1 || r.FiscalYearStartMonth > 12 {
			return nil, fmt.Errorf("fiscal_year_start_month: %d out of range (1-12)", r.FiscalYearStartMonth)
		}
		cfg.FiscalYearStartMonth = r.FiscalYearStartMonth
	}

	if r.MonthsPerRow != 0 {
		if r.MonthsPerRow < 1 || r.MonthsPerRow > maxMonthsPerRow {
			return nil, fmt.Errorf("months_per_row: %d out of range (1-%d)", r.MonthsPerRow, maxMonthsPerRow)
		}
		cfg.MonthsPerRow = r.MonthsPerRow
	}

	return cfg, nil
}
