package models

import "fmt"

// PeriodKind represents the granularity of a periodic note.
type PeriodKind string

const (
	KindDaily   PeriodKind = "daily"
	KindWeekly  PeriodKind = "weekly"
	KindMonthly PeriodKind = "monthly"
	KindYearly  PeriodKind = "yearly"
)

// PeriodIdentity identifies one calendar period. Only the fields required by
// Kind are set: daily uses Year/Month/Day, weekly uses Year/Month/Week (both
// derived from the ISO week's Thursday), monthly uses Year/Month, yearly uses
// Year alone. Identities are derived from filenames and never mutated.
type PeriodIdentity struct {
	Kind  PeriodKind
	Year  int
	Month int
	Day   int
	Week  int
}

func (p PeriodIdentity) String() string {
	switch p.Kind {
	case KindDaily:
		return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	case KindWeekly:
		return fmt.Sprintf("%04d-W%02d", p.Year, p.Week)
	case KindMonthly:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case KindYearly:
		return fmt.Sprintf("%04d", p.Year)
	}
	return string(p.Kind)
}
