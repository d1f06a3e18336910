package observability

import (
	"fmt"
	"time"
)

// Metrics aggregates transfer activity derived from the event log.
type Metrics struct {
	Transferred    int            `json:"transferred"`
	New            int            `json:"new"`
	Merged         int            `json:"merged"`
	Skipped        int            `json:"skipped"`
	Swept          int            `json:"swept"`
	ByCommand      map[string]int `json:"by_command"`
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{ByCommand: make(map[string]int)}
	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventMigrate, EventPush, EventPull, EventProject:
			m.ByCommand[event.Type]++
			m.Transferred += intField(event, "succeeded")
			m.New += intField(event, "new")
			m.Merged += intField(event, "merged")
			m.Skipped += intField(event, "skipped")
		case EventSweep:
			m.ByCommand[event.Type]++
			m.Swept += intField(event, "moved")
		}
	}
	return m, nil
}

// intField reads a numeric data field; JSON decoding yields float64.
func intField(event Event, key string) int {
	switch v := event.Data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
