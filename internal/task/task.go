package task

import (
	"fmt"
	"strings"
	"time"
)

// Reserved separators of the save file. Descriptions may not contain them.
const (
	RecordSeparator = " | "
	RangeSeparator  = "–"
)

// Type tags a Task variant.
type Type string

const (
	TypeTodo     Type = "T"
	TypeDeadline Type = "D"
	TypeEvent    Type = "E"
)

// Task is one of Todo, Deadline or Event. By is set for deadlines,
// From and To for events.
type Task struct {
	Type        Type
	Description string
	Done        bool
	By          DateSpec
	From        DateSpec
	To          DateSpec
}

func NewTodo(description string) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	return &Task{Type: TypeTodo, Description: desc}, nil
}

func NewDeadline(description, by string) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	due, err := ParseDateSpec(by)
	if err != nil {
		return nil, fmt.Errorf("deadline /by: %w", err)
	}
	return &Task{Type: TypeDeadline, Description: desc, By: due}, nil
}

// NewEvent builds an event. Both endpoints must use the same layout and
// start may not come after end.
func NewEvent(description, from, to string) (*Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return nil, err
	}
	if strings.Contains(from, RangeSeparator) || strings.Contains(to, RangeSeparator) {
		return nil, &ValidationError{
			Kind:   IllegalCharacter,
			Field:  "event",
			Reason: fmt.Sprintf("event start and end cannot contain %q", RangeSeparator),
		}
	}
	start, err := ParseDateSpec(from)
	if err != nil {
		return nil, fmt.Errorf("event /from: %w", err)
	}
	end, err := ParseDateSpec(to)
	if err != nil {
		return nil, fmt.Errorf("event /to: %w", err)
	}
	if start.HasTime() != end.HasTime() {
		return nil, &ValidationError{
			Kind:   MixedFormats,
			Field:  "event",
			Reason: "event start and end must both be dates or both be date-times",
		}
	}
	if start.After(end) {
		return nil, &ValidationError{
			Kind:   BadRange,
			Field:  "event",
			Reason: "event start cannot be after end",
		}
	}
	return &Task{Type: TypeEvent, Description: desc, From: start, To: end}, nil
}

func cleanDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Kind: EmptyValue, Field: "description", Reason: "description cannot be empty"}
	}
	if HasReserved(s) {
		return "", &ValidationError{
			Kind:   IllegalCharacter,
			Field:  "description",
			Reason: fmt.Sprintf("description cannot contain %q or %q, or start or end with \"|\"", RecordSeparator, RangeSeparator),
		}
	}
	return s, nil
}

// HasReserved reports whether a trimmed description would break its
// record: it holds a separator, or a "|" at either end would merge with
// the neighbouring field separator.
func HasReserved(s string) bool {
	return strings.Contains(s, RecordSeparator) ||
		strings.Contains(s, RangeSeparator) ||
		strings.HasPrefix(s, "|") ||
		strings.HasSuffix(s, "|")
}

func (t *Task) Mark()   { t.Done = true }
func (t *Task) Unmark() { t.Done = false }

// Toggle flips the completion flag.
func (t *Task) Toggle() { t.Done = !t.Done }

func (t *Task) StatusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// IsScheduled reports whether the task carries dates.
func (t *Task) IsScheduled() bool {
	return t.Type == TypeDeadline || t.Type == TypeEvent
}

// IsOnDate reports whether date falls on a deadline's day or inside an
// event's inclusive day range. Todos are never on a date.
func (t *Task) IsOnDate(date time.Time) bool {
	switch t.Type {
	case TypeDeadline:
		return t.By.Includes(date)
	case TypeEvent:
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		return !day.Before(t.From.Date()) && !day.After(t.To.Date())
	default:
		return false
	}
}

// Render returns the list row, e.g. "[D][ ] report (by: Aug 27 2025)".
func (t *Task) Render() string {
	base := fmt.Sprintf("[%s][%s] %s", t.Type, t.StatusIcon(), t.Description)
	switch t.Type {
	case TypeDeadline:
		return base + " (by: " + t.By.Display() + ")"
	case TypeEvent:
		return base + " (from: " + t.From.Display() + " to: " + t.To.Display() + ")"
	default:
		return base
	}
}

func (t *Task) String() string { return t.Render() }

// Equal compares type, description, completion and original date text.
func (t *Task) Equal(o *Task) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Type == o.Type &&
		t.Description == o.Description &&
		t.Done == o.Done &&
		t.By.Original() == o.By.Original() &&
		t.From.Original() == o.From.Original() &&
		t.To.Original() == o.To.Original()
}
