package core

import (
	"testing"
	"time"

	"github.com/perinote/perinote/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISOWeekNumber_YearBoundaries(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		week int
		year int
	}{
		{"regular midyear day", date(2026, time.June, 15), 25, 2026},
		{"jan 1 on a thursday opens week 1", date(2026, time.January, 1), 1, 2026},
		{"jan 1 landing in the old year's last week", date(2027, time.January, 1), 53, 2026},
		{"dec 29 landing in week 1 of the next year", date(2025, time.December, 29), 1, 2026},
		{"sunday closes its week", date(2026, time.January, 18), 3, 2026},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOWeekNumber(tt.date); got != tt.week {
				t.Errorf("ISOWeekNumber(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.week)
			}
			if got := ISOWeekYear(tt.date); got != tt.year {
				t.Errorf("ISOWeekYear(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.year)
			}
		})
	}
}

func TestMondayOfISOWeek(t *testing.T) {
	tests := []struct {
		year, week int
		want       time.Time
	}{
		{2026, 1, date(2025, time.December, 29)},
		{2026, 3, date(2026, time.January, 12)},
		{2026, 53, date(2026, time.December, 28)},
		{2027, 1, date(2027, time.January, 4)},
	}
	for _, tt := range tests {
		if got := MondayOfISOWeek(tt.year, tt.week); !got.Equal(tt.want) {
			t.Errorf("MondayOfISOWeek(%d, %d) = %s, want %s",
				tt.year, tt.week, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestWeeklyIdentity_MonthFollowsThursday(t *testing.T) {
	// Week 5 of 2026 runs Mon Jan 26 to Sun Feb 1. Its Thursday is Jan 29,
	// so the week belongs to January even when resolved from Feb 1.
	id := WeeklyIdentity(date(2026, time.February, 1))
	if id.Year != 2026 || id.Month != 1 || id.Week != 5 {
		t.Errorf("WeeklyIdentity(2026-02-01) = %+v, want 2026-01-W05", id)
	}

	// Week 1 of 2026 starts Mon Dec 29 2025; its Thursday is Jan 1 2026.
	id = WeeklyIdentity(date(2025, time.December, 30))
	if id.Year != 2026 || id.Month != 1 || id.Week != 1 {
		t.Errorf("WeeklyIdentity(2025-12-30) = %+v, want 2026-01-W01", id)
	}
}

func TestNextPeriod(t *testing.T) {
	tests := []struct {
		name string
		id   models.PeriodIdentity
		want models.PeriodIdentity
	}{
		{
			"weekday daily steps one day",
			models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 15},
			models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 16},
		},
		{
			"sunday promotes to the following week",
			models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18},
			models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4},
		},
		{
			"weekly steps one week",
			models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 3},
			models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4},
		},
		{
			"last week rolls into the next week-year",
			models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 12, Week: 53},
			models.PeriodIdentity{Kind: models.KindWeekly, Year: 2027, Month: 1, Week: 1},
		},
		{
			"monthly steps one month",
			models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 3},
			models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 4},
		},
		{
			"december promotes to the following year",
			models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 12},
			models.PeriodIdentity{Kind: models.KindYearly, Year: 2027},
		},
		{
			"yearly steps one year",
			models.PeriodIdentity{Kind: models.KindYearly, Year: 2026},
			models.PeriodIdentity{Kind: models.KindYearly, Year: 2027},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextPeriod(tt.id)
			if err != nil {
				t.Fatalf("NextPeriod(%v): %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("NextPeriod(%v) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestHigherPeriod(t *testing.T) {
	daily := models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18}
	got, err := HigherPeriod(daily, AnchorDate(daily, models.AnchorSource, date(2026, time.March, 1)))
	if err != nil {
		t.Fatalf("HigherPeriod daily: %v", err)
	}
	want := models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 3}
	if got != want {
		t.Errorf("HigherPeriod(2026-01-18 Sun) = %+v, want %+v", got, want)
	}

	// The month-spanning week resolves to its Thursday's month when
	// anchored on the source.
	weekly := models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 5}
	got, err = HigherPeriod(weekly, AnchorDate(weekly, models.AnchorSource, date(2026, time.February, 1)))
	if err != nil {
		t.Fatalf("HigherPeriod weekly: %v", err)
	}
	want = models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 1}
	if got != want {
		t.Errorf("HigherPeriod(2026-01-W05, source anchor) = %+v, want %+v", got, want)
	}

	// Anchored on today, the same week resolves to today's month.
	got, err = HigherPeriod(weekly, AnchorDate(weekly, models.AnchorToday, date(2026, time.February, 1)))
	if err != nil {
		t.Fatalf("HigherPeriod weekly, today anchor: %v", err)
	}
	want = models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 2}
	if got != want {
		t.Errorf("HigherPeriod(2026-01-W05, today anchor) = %+v, want %+v", got, want)
	}

	yearly := models.PeriodIdentity{Kind: models.KindYearly, Year: 2026}
	if _, err := HigherPeriod(yearly, date(2026, time.January, 1)); err == nil {
		t.Error("expected error for HigherPeriod of a yearly note")
	}
}

func TestLowerPeriod(t *testing.T) {
	monthly := models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 1}
	got, err := LowerPeriod(monthly, date(2026, time.January, 18))
	if err != nil {
		t.Fatalf("LowerPeriod monthly: %v", err)
	}
	want := models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 3}
	if got != want {
		t.Errorf("LowerPeriod(2026-01, ref 2026-01-18) = %+v, want %+v", got, want)
	}

	if _, err := LowerPeriod(monthly, date(2026, time.February, 2)); err == nil {
		t.Error("expected error when the reference date is outside the period")
	}

	daily := models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18}
	if _, err := LowerPeriod(daily, date(2026, time.January, 18)); err == nil {
		t.Error("expected error for LowerPeriod of a daily note")
	}
}

func TestBasename(t *testing.T) {
	tests := []struct {
		id   models.PeriodIdentity
		want string
	}{
		{models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18}, "2026-01-18 Sun"},
		{models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4}, "2026-01-W04"},
		{models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 12}, "2026-12 Dec"},
		{models.PeriodIdentity{Kind: models.KindYearly, Year: 2027}, "2027"},
	}
	for _, tt := range tests {
		if got := Basename(tt.id); got != tt.want {
			t.Errorf("Basename(%+v) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestParseBasename(t *testing.T) {
	tests := []struct {
		name string
		id   models.PeriodIdentity
		ok   bool
	}{
		{"2026-01-18 Sun", models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18}, true},
		{"2026-01-W04.md", models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4}, true},
		{"2026-12 Dec", models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 12}, true},
		{"2027", models.PeriodIdentity{Kind: models.KindYearly, Year: 2027}, true},
		{"meeting-notes", models.PeriodIdentity{}, false},
		{"2026-01-18", models.PeriodIdentity{}, false},
		{"2026-1-W4", models.PeriodIdentity{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseBasename(tt.name)
		if ok != tt.ok {
			t.Errorf("ParseBasename(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got != tt.id {
			t.Errorf("ParseBasename(%q) = %+v, want %+v", tt.name, got, tt.id)
		}
	}
}

func TestNotePath(t *testing.T) {
	settings := *DefaultSettings()

	tests := []struct {
		id   models.PeriodIdentity
		want string
	}{
		{models.PeriodIdentity{Kind: models.KindDaily, Year: 2026, Month: 1, Day: 18}, "journal/2026/01/2026-01-18 Sun.md"},
		{models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4}, "journal/2026/01/2026-01-W04.md"},
		{models.PeriodIdentity{Kind: models.KindMonthly, Year: 2026, Month: 12}, "journal/2026/2026-12 Dec.md"},
		{models.PeriodIdentity{Kind: models.KindYearly, Year: 2027}, "journal/2027/2027.md"},
	}
	for _, tt := range tests {
		if got := NotePath(tt.id, settings); got != tt.want {
			t.Errorf("NotePath(%+v) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestNotePath_CustomTemplate(t *testing.T) {
	settings := *DefaultSettings()
	settings.DiaryRoot = "diary"
	settings.WeeklyPathTemplate = "weeks/{year}/{basename}"

	id := models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 4}
	want := "diary/weeks/2026/2026-01-W04.md"
	if got := NotePath(id, settings); got != want {
		t.Errorf("NotePath with custom template = %q, want %q", got, want)
	}
}

func TestPeriodContains(t *testing.T) {
	weekly := models.PeriodIdentity{Kind: models.KindWeekly, Year: 2026, Month: 1, Week: 1}
	// Week 1 of 2026 runs Mon Dec 29 2025 to Sun Jan 4 2026.
	if !PeriodContains(date(2025, time.December, 29), weekly) {
		t.Error("expected week 1 of 2026 to contain 2025-12-29")
	}
	if !PeriodContains(date(2026, time.January, 4), weekly) {
		t.Error("expected week 1 of 2026 to contain 2026-01-04")
	}
	if PeriodContains(date(2026, time.January, 5), weekly) {
		t.Error("expected week 1 of 2026 not to contain 2026-01-05")
	}
}
