package weekstart

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shinji-kodama/fcal/internal/model"
)

// appleLookupTimeout bounds the `defaults` call so a stuck preferences
// daemon cannot hang the CLI.
const appleLookupTimeout = 2 * time.Second

// gregorianRegex matches the Gregorian entry of the AppleFirstWeekday
// dictionary, e.g. "{ gregorian = 2; }".
var gregorianRegex = regexp.MustCompile(`gregorian\s*=\s*(\d+)\s*;`)

// AppleProvider reads the macOS "First day of week" setting from the global
// AppleFirstWeekday user default.
type AppleProvider struct {
	// Run executes the defaults command and returns its stdout.
	// Nil means running /usr/bin/defaults.
	Run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// WeekStart reports the Gregorian first weekday, if the user has set one.
// The defaults tool exits non-zero when the key is absent, which is
// treated as "no preference".
func (p AppleProvider) WeekStart() (model.WeekStart, bool) {
	run := p.Run
	if run == nil {
		run = runCommand
	}

	ctx, cancel := context.WithTimeout(context.Background(), appleLookupTimeout)
	defer cancel()

	out, err := run(ctx, "defaults", "read", "-g", "AppleFirstWeekday")
	if err != nil {
		return 0, false
	}
	return parseAppleFirstWeekday(string(out))
}

// parseAppleFirstWeekday decodes the defaults output. Apple numbers
// weekdays 1 (Sunday) through 7 (Saturday).
func parseAppleFirstWeekday(out string) (model.WeekStart, bool) {
	m := gregorianRegex.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 7 {
		return 0, false
	}
	return model.WeekStart(n - 1), true
}

// runCommand runs name with args and returns trimmed stdout.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(out))), nil
}
