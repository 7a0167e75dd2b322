package arcade

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// DefaultLogCapacity is the ring size NewBoard uses.
const DefaultLogCapacity = 256

// Event is one recorded happening in a game.
type Event struct {
	At       time.Duration
	Round    int
	Category string // phase, judge, spawn, shot, display, gauge
	Key      string // specific event name within the category
	Value    string // human-readable detail
	Num      float64
}

// String formats the event as a fixed-width log line.
//
//	[  4.310s] r0 judge    perfect        up
func (e Event) String() string {
	return fmt.Sprintf("[%8.3fs] r%d %-8s %-14s %s",
		e.At.Seconds(), e.Round, e.Category, e.Key, e.Value)
}

// EventLog is a fixed-capacity ring of events. The backing array is
// allocated once; once full, each Add overwrites the oldest entry. When an
// echo logger is set every event is also printed through it.
//
// A nil *EventLog discards everything, so a board without a log needs no
// special casing.
type EventLog struct {
	entries []Event
	head    int
	count   int
	total   int
	echo    *log.Logger
}

// NewEventLog creates a ring holding capacity events.
func NewEventLog(capacity int, echo *log.Logger) *EventLog {
	if capacity < 1 {
		capacity = 1
	}
	return &EventLog{entries: make([]Event, capacity), echo: echo}
}

// Add records an event.
func (l *EventLog) Add(at time.Duration, round int, category, key, value string, num float64) {
	if l == nil {
		return
	}
	l.entries[l.head] = Event{
		At:       at,
		Round:    round,
		Category: category,
		Key:      key,
		Value:    value,
		Num:      num,
	}
	if l.echo != nil {
		l.echo.Print(l.entries[l.head].String())
	}
	l.head = (l.head + 1) % len(l.entries)
	if l.count < len(l.entries) {
		l.count++
	}
	l.total++
}

// Len is the number of events currently held.
func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	return l.count
}

// Total is the number of events ever added, including overwritten ones.
func (l *EventLog) Total() int {
	if l == nil {
		return 0
	}
	return l.total
}

// Reset drops every held event.
func (l *EventLog) Reset() {
	if l == nil {
		return
	}
	l.head, l.count, l.total = 0, 0, 0
}

// Entries returns held events oldest first.
func (l *EventLog) Entries() []Event {
	if l == nil {
		return nil
	}
	out := make([]Event, l.count)
	n := len(l.entries)
	for i := 0; i < l.count; i++ {
		out[i] = l.entries[(l.head-l.count+i+n)%n]
	}
	return out
}

// Filter returns events matching category and key. Pass an empty string to
// match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many held events match category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent event matching category and key.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	events := l.Filter(category, key)
	if len(events) == 0 {
		return Event{}, false
	}
	return events[len(events)-1], true
}

// Format returns the held events as one string, one per line.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
