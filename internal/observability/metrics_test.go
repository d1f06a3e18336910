package observability

import (
	"testing"
	"time"
)

// fakeEventLog serves a fixed event slice, honoring the Since filter.
type fakeEventLog struct {
	events []Event
}

func (f *fakeEventLog) Write(Event) error { return nil }

func (f *fakeEventLog) Read(filter EventFilter) ([]Event, error) {
	var out []Event
	for _, e := range f.events {
		if matchesEventFilter(e, filter) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventLog) Close() error { return nil }

func TestCalculate(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	log := &fakeEventLog{events: []Event{
		{
			Time: base, Level: "INFO", Type: EventMigrate,
			Data: map[string]any{"succeeded": float64(3), "new": float64(2), "merged": float64(1), "skipped": float64(1)},
		},
		{
			Time: base.Add(time.Hour), Level: "INFO", Type: EventPush,
			Data: map[string]any{"succeeded": float64(1), "new": float64(1)},
		},
		{Time: base.Add(2 * time.Hour), Level: "WARN", Type: EventSkip},
		{
			Time: base.Add(3 * time.Hour), Level: "INFO", Type: EventSweep,
			Data: map[string]any{"moved": float64(4)},
		},
	}}

	m, err := NewMetricsCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if m.Transferred != 4 {
		t.Errorf("Transferred = %d, want 4", m.Transferred)
	}
	if m.New != 3 {
		t.Errorf("New = %d, want 3", m.New)
	}
	if m.Merged != 1 {
		t.Errorf("Merged = %d, want 1", m.Merged)
	}
	if m.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", m.Skipped)
	}
	if m.Swept != 4 {
		t.Errorf("Swept = %d, want 4", m.Swept)
	}
	if m.EventCount != 4 {
		t.Errorf("EventCount = %d, want 4", m.EventCount)
	}
	if m.ByCommand[EventMigrate] != 1 || m.ByCommand[EventPush] != 1 || m.ByCommand[EventSweep] != 1 {
		t.Errorf("ByCommand = %v", m.ByCommand)
	}
	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v", m.OldestEvent)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(3*time.Hour)) {
		t.Errorf("NewestEvent = %v", m.NewestEvent)
	}
}

func TestCalculate_SinceCutsOffOldEvents(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	log := &fakeEventLog{events: []Event{
		{Time: base.AddDate(0, 0, -30), Type: EventMigrate, Data: map[string]any{"succeeded": float64(10)}},
		{Time: base, Type: EventMigrate, Data: map[string]any{"succeeded": float64(1)}},
	}}

	m, err := NewMetricsCalculator(log).Calculate(base.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.Transferred != 1 || m.EventCount != 1 {
		t.Errorf("metrics = %+v, old events not filtered", m)
	}
}

func TestCalculate_Empty(t *testing.T) {
	m, err := NewMetricsCalculator(&fakeEventLog{}).Calculate(time.Now())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.NewestEvent != nil {
		t.Errorf("empty metrics = %+v", m)
	}
}
