package task

import (
	"fmt"
	"strings"
	"time"
)

// Accepted input layouts. The date-time layout is tried first.
const (
	layoutDateTime = "2006-1-2 1504"
	layoutDate     = "2006-1-2"

	displayDateTime = "Jan 2 2006, 3:04 pm"
	displayDate     = "Jan 2 2006"
)

// AcceptedFormats is the human form of the accepted input layouts.
var AcceptedFormats = []string{"yyyy-MM-dd HHmm", "yyyy-MM-dd"}

// DateSpec is a calendar date or a date with time of day. It keeps the
// text it was parsed from so it can be written back unchanged.
type DateSpec struct {
	value    time.Time
	hasTime  bool
	original string
}

// ParseDateSpec parses raw as "yyyy-M-d HHmm" or "yyyy-M-d".
func ParseDateSpec(raw string) (DateSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateSpec{}, &DateError{Kind: EmptyValue}
	}
	if t, err := time.Parse(layoutDateTime, raw); err == nil {
		return DateSpec{value: t, hasTime: true, original: raw}, nil
	}
	if t, err := time.Parse(layoutDate, raw); err == nil {
		return DateSpec{value: t, original: raw}, nil
	}
	return DateSpec{}, &DateError{Kind: InvalidFormat, Input: raw}
}

func (d DateSpec) HasTime() bool { return d.hasTime }

// Original returns the text the value was parsed from.
func (d DateSpec) Original() string { return d.original }

// Date returns the calendar date component at midnight UTC.
func (d DateSpec) Date() time.Time {
	y, m, day := d.value.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Display renders "Aug 27 2025" or "Aug 27 2025, 6:00 pm".
func (d DateSpec) Display() string {
	if d.hasTime {
		return d.value.Format(displayDateTime)
	}
	return d.value.Format(displayDate)
}

// Includes reports whether the calendar date of d equals date.
func (d DateSpec) Includes(date time.Time) bool {
	return sameDay(d.Date(), date)
}

func (d DateSpec) After(o DateSpec) bool { return d.value.After(o.value) }

func (d DateSpec) String() string { return d.Display() }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateError reports an unusable date argument.
// It satisfies errors.Is(err, ErrDateFormat), or ErrValidation for EmptyValue.
type DateError struct {
	Kind  Kind
	Input string
}

func (e *DateError) Error() string {
	if e == nil {
		return "invalid date"
	}
	if e.Kind == EmptyValue {
		return "date cannot be empty"
	}
	return fmt.Sprintf("invalid date %q, use one of: %s", e.Input, strings.Join(AcceptedFormats, ", "))
}

func (e *DateError) Is(target error) bool {
	if e.Kind == EmptyValue {
		return target == ErrValidation
	}
	return target == ErrDateFormat
}
