package weekstart

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/shinji-kodama/fcal/internal/model"
)

// localeVars are consulted in POSIX precedence order.
var localeVars = []string{"LC_ALL", "LC_TIME", "LANG"}

// Territories whose calendars start on a day other than Monday, after the
// CLDR weekData firstDay table. Every other territory starts on Monday.
var regionFirstDay = map[string]time.Weekday{}

func init() {
	for _, r := range strings.Fields(`AG AS BD BR BS BT BW BZ CA CO DM DO ET GT GU HK HN ID IL IN
		JM JP KE KH KR LA MH MM MO MT MX MZ NI NP PA PE PH PK PR PT PY SA SG SV TH TT TW UM US
		VE VI WS YE ZA ZW`) {
		regionFirstDay[r] = time.Sunday
	}
	for _, r := range strings.Fields(`AE AF BH DJ DZ EG IQ IR JO KW LY OM QA SD SY`) {
		regionFirstDay[r] = time.Saturday
	}
	regionFirstDay["MV"] = time.Friday
}

// LocaleProvider derives the week start from the locale environment.
type LocaleProvider struct {
	// Getenv reads environment variables. Nil means os.Getenv.
	Getenv func(string) string
}

// WeekStart parses the first non-empty locale variable and maps its
// territory to a first weekday. The C and POSIX locales carry no territory
// and yield no preference.
func (p LocaleProvider) WeekStart() (model.WeekStart, bool) {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, name := range localeVars {
		value := getenv(name)
		if value == "" {
			continue
		}
		region, ok := localeRegion(value)
		if !ok {
			return 0, false
		}
		return RegionWeekStart(region), true
	}
	return 0, false
}

// RegionWeekStart returns the customary first weekday of an ISO 3166
// region code such as "US" or "DE".
func RegionWeekStart(region string) model.WeekStart {
	if d, ok := regionFirstDay[strings.ToUpper(region)]; ok {
		return model.WeekStart(d)
	}
	return model.WeekStartMonday
}

// localeRegion extracts the territory from a POSIX locale name such as
// "en_US.UTF-8" or "de_DE@euro". Names without a territory ("en", "de")
// give no preference, since the language alone does not settle the week.
func localeRegion(locale string) (string, bool) {
	name := locale
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "C" || name == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return "", false
	}
	region, conf := tag.Region()
	if conf != language.Exact {
		return "", false
	}
	return region.String(), true
}
