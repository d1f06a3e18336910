package core

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/perinote/perinote/pkg/models"
)

// Periods nest yearly > monthly > weekly > daily, except that a week may span
// two months or years. A week's owning year and month are those of its
// Thursday (ISO 8601), never its Monday.

// isoDayNumber returns Monday=1 .. Sunday=7.
func isoDayNumber(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// isoThursday returns the Thursday of the ISO week containing date.
func isoThursday(date time.Time) time.Time {
	return date.AddDate(0, 0, 4-isoDayNumber(date))
}

// ISOWeekNumber computes the ISO 8601 week number of date. Dec 29-31 can land
// in week 1 of the next year and Jan 1-3 in week 52/53 of the previous one.
func ISOWeekNumber(date time.Time) int {
	thursday := isoThursday(date)
	return (thursday.YearDay() + 6) / 7
}

// ISOWeekYear returns the year owning date's ISO week: the Thursday's year.
func ISOWeekYear(date time.Time) int {
	return isoThursday(date).Year()
}

// MondayOfISOWeek returns the Monday starting the given ISO week. Jan 4 is
// always inside week 1, so the week-1 Monday is Jan 4 shifted back to Monday.
func MondayOfISOWeek(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, 1-isoDayNumber(jan4))
	return monday.AddDate(0, 0, (week-1)*7)
}

// DailyIdentity returns the daily period containing date.
func DailyIdentity(date time.Time) models.PeriodIdentity {
	return models.PeriodIdentity{
		Kind:  models.KindDaily,
		Year:  date.Year(),
		Month: int(date.Month()),
		Day:   date.Day(),
	}
}

// WeeklyIdentity returns the weekly period containing date. Year and month
// are recomputed from the week's Thursday, not carried over from date.
func WeeklyIdentity(date time.Time) models.PeriodIdentity {
	thursday := isoThursday(date)
	return models.PeriodIdentity{
		Kind:  models.KindWeekly,
		Year:  thursday.Year(),
		Month: int(thursday.Month()),
		Week:  ISOWeekNumber(date),
	}
}

// MonthlyIdentity returns the monthly period containing date.
func MonthlyIdentity(date time.Time) models.PeriodIdentity {
	return models.PeriodIdentity{Kind: models.KindMonthly, Year: date.Year(), Month: int(date.Month())}
}

// YearlyIdentity returns the yearly period containing date.
func YearlyIdentity(date time.Time) models.PeriodIdentity {
	return models.PeriodIdentity{Kind: models.KindYearly, Year: date.Year()}
}

// startDate returns the first day of the period.
func startDate(id models.PeriodIdentity) time.Time {
	switch id.Kind {
	case models.KindDaily:
		return time.Date(id.Year, time.Month(id.Month), id.Day, 0, 0, 0, 0, time.UTC)
	case models.KindWeekly:
		return MondayOfISOWeek(id.Year, id.Week)
	case models.KindMonthly:
		return time.Date(id.Year, time.Month(id.Month), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(id.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// PeriodContains reports whether date falls inside the period's span.
func PeriodContains(date time.Time, id models.PeriodIdentity) bool {
	switch id.Kind {
	case models.KindDaily:
		return date.Year() == id.Year && int(date.Month()) == id.Month && date.Day() == id.Day
	case models.KindWeekly:
		monday := MondayOfISOWeek(id.Year, id.Week)
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		return !day.Before(monday) && day.Before(monday.AddDate(0, 0, 7))
	case models.KindMonthly:
		return date.Year() == id.Year && int(date.Month()) == id.Month
	case models.KindYearly:
		return date.Year() == id.Year
	}
	return false
}

// NextPeriod computes the identity of the adjacent period. Crossing a
// mandatory boundary promotes the kind: a Sunday's next period is the
// following week, December's next period is the following year. The weekly
// identity is always recomputed from the new Monday's Thursday rather than
// naively carried forward.
func NextPeriod(id models.PeriodIdentity) (models.PeriodIdentity, error) {
	switch id.Kind {
	case models.KindDaily:
		date := startDate(id)
		next := date.AddDate(0, 0, 1)
		if date.Weekday() == time.Sunday {
			return WeeklyIdentity(next), nil
		}
		return DailyIdentity(next), nil
	case models.KindWeekly:
		monday := MondayOfISOWeek(id.Year, id.Week)
		return WeeklyIdentity(monday.AddDate(0, 0, 7)), nil
	case models.KindMonthly:
		if id.Month == 12 {
			return models.PeriodIdentity{Kind: models.KindYearly, Year: id.Year + 1}, nil
		}
		return models.PeriodIdentity{Kind: models.KindMonthly, Year: id.Year, Month: id.Month + 1}, nil
	case models.KindYearly:
		return models.PeriodIdentity{Kind: models.KindYearly, Year: id.Year + 1}, nil
	}
	return models.PeriodIdentity{}, errValidation("unknown period kind %q", id.Kind)
}

// AnchorDate returns the date a pull-up resolves its higher period from:
// the source period's own span or today, per the configured anchor mode.
func AnchorDate(id models.PeriodIdentity, mode models.PullUpAnchor, today time.Time) time.Time {
	if mode == models.AnchorToday {
		return today
	}
	if id.Kind == models.KindWeekly {
		// The owning month of a week is its Thursday's month.
		return isoThursday(startDate(id))
	}
	return startDate(id)
}

// HigherPeriod computes the identity one level up, resolved at anchor.
// Yearly has no higher period.
func HigherPeriod(id models.PeriodIdentity, anchor time.Time) (models.PeriodIdentity, error) {
	switch id.Kind {
	case models.KindDaily:
		return WeeklyIdentity(anchor), nil
	case models.KindWeekly:
		return MonthlyIdentity(anchor), nil
	case models.KindMonthly:
		return YearlyIdentity(anchor), nil
	case models.KindYearly:
		return models.PeriodIdentity{}, errValidation("already at the topmost period")
	}
	return models.PeriodIdentity{}, errValidation("unknown period kind %q", id.Kind)
}

// LowerPeriod computes the identity one level down, at the point referenceDate
// falls. referenceDate must lie inside id's span; violating that is a
// reported validation failure, not undefined behavior. Daily has no lower
// period.
func LowerPeriod(id models.PeriodIdentity, referenceDate time.Time) (models.PeriodIdentity, error) {
	if id.Kind == models.KindDaily {
		return models.PeriodIdentity{}, errValidation("already at the bottommost period")
	}
	if !PeriodContains(referenceDate, id) {
		return models.PeriodIdentity{}, errValidation(
			"reference date %s is outside the %s period %s",
			referenceDate.Format("2006-01-02"), id.Kind, id)
	}
	switch id.Kind {
	case models.KindWeekly:
		return DailyIdentity(referenceDate), nil
	case models.KindMonthly:
		return WeeklyIdentity(referenceDate), nil
	case models.KindYearly:
		return MonthlyIdentity(referenceDate), nil
	}
	return models.PeriodIdentity{}, errValidation("unknown period kind %q", id.Kind)
}

// Filename grammar, case-sensitive. The weekday and month abbreviations are
// decorative and not cross-checked against the numeric fields.
var (
	dailyNamePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) [A-Z][a-z]{2}$`)
	weeklyNamePattern  = regexp.MustCompile(`^(\d{4})-(\d{2})-W(\d{2})$`)
	monthlyNamePattern = regexp.MustCompile(`^(\d{4})-(\d{2}) [A-Z][a-z]{2}$`)
	yearlyNamePattern  = regexp.MustCompile(`^(\d{4})$`)
)

// Basename renders the filename (without extension) for a period.
func Basename(id models.PeriodIdentity) string {
	switch id.Kind {
	case models.KindDaily:
		return startDate(id).Format("2006-01-02 Mon")
	case models.KindWeekly:
		return fmt.Sprintf("%04d-%02d-W%02d", id.Year, id.Month, id.Week)
	case models.KindMonthly:
		return time.Date(id.Year, time.Month(id.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01 Jan")
	case models.KindYearly:
		return fmt.Sprintf("%04d", id.Year)
	}
	return ""
}

// ParseBasename is the exact inverse of Basename for the default templates.
// It accepts a filename with or without the .md extension.
func ParseBasename(name string) (models.PeriodIdentity, bool) {
	name = strings.TrimSuffix(name, ".md")

	if m := dailyNamePattern.FindStringSubmatch(name); m != nil {
		return models.PeriodIdentity{
			Kind:  models.KindDaily,
			Year:  atoi(m[1]),
			Month: atoi(m[2]),
			Day:   atoi(m[3]),
		}, true
	}
	if m := weeklyNamePattern.FindStringSubmatch(name); m != nil {
		return models.PeriodIdentity{
			Kind:  models.KindWeekly,
			Year:  atoi(m[1]),
			Month: atoi(m[2]),
			Week:  atoi(m[3]),
		}, true
	}
	if m := monthlyNamePattern.FindStringSubmatch(name); m != nil {
		return models.PeriodIdentity{
			Kind:  models.KindMonthly,
			Year:  atoi(m[1]),
			Month: atoi(m[2]),
		}, true
	}
	if m := yearlyNamePattern.FindStringSubmatch(name); m != nil {
		return models.PeriodIdentity{Kind: models.KindYearly, Year: atoi(m[1])}, true
	}
	return models.PeriodIdentity{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Default per-kind path templates, relative to the diary root.
const (
	DefaultDailyPathTemplate   = "{year}/{month}/{basename}"
	DefaultWeeklyPathTemplate  = "{year}/{month}/{basename}"
	DefaultMonthlyPathTemplate = "{year}/{basename}"
	DefaultYearlyPathTemplate  = "{year}/{basename}"
)

// NotePath renders the vault path of a period's note from the configured
// per-kind template, always slash-separated and ending in .md.
func NotePath(id models.PeriodIdentity, settings models.Settings) string {
	var tmpl string
	switch id.Kind {
	case models.KindDaily:
		tmpl = settings.DailyPathTemplate
	case models.KindWeekly:
		tmpl = settings.WeeklyPathTemplate
	case models.KindMonthly:
		tmpl = settings.MonthlyPathTemplate
	case models.KindYearly:
		tmpl = settings.YearlyPathTemplate
	}
	if tmpl == "" {
		tmpl = defaultPathTemplate(id.Kind)
	}

	rendered := strings.NewReplacer(
		"{year}", fmt.Sprintf("%04d", id.Year),
		"{month}", fmt.Sprintf("%02d", id.Month),
		"{basename}", Basename(id),
	).Replace(tmpl)

	return path.Join(settings.DiaryRoot, rendered) + ".md"
}

func defaultPathTemplate(kind models.PeriodKind) string {
	switch kind {
	case models.KindDaily:
		return DefaultDailyPathTemplate
	case models.KindWeekly:
		return DefaultWeeklyPathTemplate
	case models.KindMonthly:
		return DefaultMonthlyPathTemplate
	default:
		return DefaultYearlyPathTemplate
	}
}
