package store

import (
	"fmt"
	"strings"

	"github.com/amirbrooks/lebron/internal/task"
)

const (
	fieldSeparator = task.RecordSeparator
	rangeJoin      = " " + task.RangeSeparator + " "
)

// RecordError reports a record that cannot be rebuilt into a task.
// It satisfies errors.Is(err, ErrMalformedRecord) and unwraps to the
// date or validation error behind it, if any.
type RecordError struct {
	Record string
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	if e == nil {
		return ErrMalformedRecord.Error()
	}
	msg := "malformed record"
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: %q", msg, e.Record)
}

func (e *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *RecordError) Unwrap() error { return e.Err }

// EncodeRecord renders t as "<T|D|E> | <done> | <description>[ | <dates>]".
func EncodeRecord(t *task.Task) string {
	fields := []string{string(t.Type), fmt.Sprintf("%t", t.Done), t.Description}
	switch t.Type {
	case task.TypeDeadline:
		fields = append(fields, t.By.Original())
	case task.TypeEvent:
		fields = append(fields, t.From.Original()+rangeJoin+t.To.Original())
	}
	return strings.Join(fields, fieldSeparator)
}

// DecodeRecord rebuilds a task from one record. It returns nil, nil for
// lines that are blank, have fewer than three fields, or carry an
// unknown type tag.
func DecodeRecord(line string) (*task.Task, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 3 {
		return nil, nil
	}
	tag := task.Type(strings.TrimSpace(parts[0]))
	done := parseDone(parts[1])
	desc := strings.TrimSpace(parts[2])

	var (
		t   *task.Task
		err error
	)
	switch tag {
	case task.TypeTodo:
		t, err = task.NewTodo(desc)
	case task.TypeDeadline:
		if len(parts) < 4 {
			return nil, &RecordError{Record: line, Reason: "deadline missing /by"}
		}
		t, err = task.NewDeadline(desc, parts[3])
	case task.TypeEvent:
		if len(parts) < 4 {
			return nil, &RecordError{Record: line, Reason: "event missing times"}
		}
		fromTo := strings.SplitN(parts[3], task.RangeSeparator, 2)
		if len(fromTo) < 2 {
			return nil, &RecordError{Record: line, Reason: "event missing end time"}
		}
		t, err = task.NewEvent(desc, fromTo[0], fromTo[1])
	default:
		return nil, nil
	}
	if err != nil {
		return nil, &RecordError{Record: line, Err: err}
	}
	t.Done = done
	return t, nil
}

func parseDone(s string) bool {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true
	default:
		return false
	}
}
