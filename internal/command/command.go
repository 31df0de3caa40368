// Package command turns one raw input line into a validated Command.
// It is stateless; index bounds are checked later against the live list.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirbrooks/lebron/internal/task"
)

var ErrParse = errors.New("parse error")

// Type tags a Command variant.
type Type string

const (
	Greet       Type = "hi"
	Bye         Type = "bye"
	List        Type = "list"
	Find        Type = "find"
	Check       Type = "check"
	Mark        Type = "mark"
	Unmark      Type = "unmark"
	Delete      Type = "delete"
	AddTodo     Type = "todo"
	AddDeadline Type = "deadline"
	AddEvent    Type = "event"
	Undo        Type = "undo"
)

// Command is a parsed input line. Only the fields of its Type are set.
type Command struct {
	Type        Type
	Index       int
	Description string
	Keyword     string
	Date        string
	By          string
	From        string
	To          string
}

// IsAdd reports whether c creates a task.
func (c Command) IsAdd() bool {
	switch c.Type {
	case AddTodo, AddDeadline, AddEvent:
		return true
	default:
		return false
	}
}

// Kind names the specific syntax problem.
type Kind string

const (
	EmptyCommand        Kind = "empty_command"
	UnknownCommand      Kind = "unknown_command"
	UnexpectedArgument  Kind = "unexpected_argument"
	MissingIndex        Kind = "missing_index"
	NotAPositiveInteger Kind = "not_a_positive_integer"
	EmptyDescription    Kind = "empty_description"
	MalformedDeadline   Kind = "malformed_deadline"
	MalformedEvent      Kind = "malformed_event"
	IllegalCharacter    Kind = "illegal_character"
	MissingDate         Kind = "missing_date"
	MissingKeyword      Kind = "missing_keyword"
)

// ParseError describes why a line is not a command.
// It satisfies errors.Is(err, ErrParse).
type ParseError struct {
	Kind    Kind
	Command string
	Message string
}

func (e *ParseError) Error() string {
	if e == nil || strings.TrimSpace(e.Message) == "" {
		return ErrParse.Error()
	}
	return e.Message
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErr(kind Kind, head, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Command: head, Message: fmt.Sprintf(format, args...)}
}

const (
	markerBy   = "/by"
	markerFrom = "/from"
	markerTo   = "/to"
)

// Parse parses one input line. The leading keyword is case-insensitive.
func Parse(raw string) (Command, error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Command{}, parseErr(EmptyCommand, "", "command cannot be empty")
	}
	head, rest := splitHead(line)

	switch head {
	case "hi":
		return Command{Type: Greet}, nil
	case "bye":
		return Command{Type: Bye}, nil
	case "undo":
		return Command{Type: Undo}, nil
	case "list":
		if rest != "" {
			return Command{}, parseErr(UnexpectedArgument, head, "command 'list' does not take arguments")
		}
		return Command{Type: List}, nil
	case "mark", "unmark", "delete":
		idx, err := parseIndex(head, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: Type(head), Index: idx}, nil
	case "todo":
		if rest == "" {
			return Command{}, parseErr(EmptyDescription, head, "description of a todo cannot be empty")
		}
		if err := checkDescription(head, rest); err != nil {
			return Command{}, err
		}
		return Command{Type: AddTodo, Description: rest}, nil
	case "deadline":
		return parseDeadline(rest)
	case "event":
		return parseEvent(rest)
	case "check":
		if rest == "" {
			return Command{}, parseErr(MissingDate, head, "use: check <yyyy-MM-dd>")
		}
		return Command{Type: Check, Date: rest}, nil
	case "find":
		if rest == "" {
			return Command{}, parseErr(MissingKeyword, head, "keyword(s) not specified")
		}
		return Command{Type: Find, Keyword: rest}, nil
	default:
		return Command{}, parseErr(UnknownCommand, head, "unknown command %q", head)
	}
}

// splitHead splits on the first run of whitespace.
func splitHead(line string) (string, string) {
	i := strings.IndexFunc(line, isSpace)
	if i < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:i]), strings.TrimSpace(line[i:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func parseIndex(head, rest string) (int, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return 0, parseErr(MissingIndex, head, "missing index, use: %s <index>", head)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, parseErr(NotAPositiveInteger, head, "index must be a positive integer, got %q", rest)
	}
	return n, nil
}

func parseDeadline(rest string) (Command, error) {
	pos := strings.Index(rest, markerBy)
	if pos < 0 {
		return Command{}, parseErr(MalformedDeadline, "deadline", "use: deadline <description> /by <date>")
	}
	desc := strings.TrimSpace(rest[:pos])
	by := strings.TrimSpace(rest[pos+len(markerBy):])
	if desc == "" || by == "" {
		return Command{}, parseErr(MalformedDeadline, "deadline", "deadline needs a description and /by <date>")
	}
	if err := checkDescription("deadline", desc); err != nil {
		return Command{}, err
	}
	return Command{Type: AddDeadline, Description: desc, By: by}, nil
}

func parseEvent(rest string) (Command, error) {
	usage := "use: event <description> /from <start> /to <end>"
	fromPos := strings.Index(rest, markerFrom)
	if fromPos < 0 {
		return Command{}, parseErr(MalformedEvent, "event", usage)
	}
	afterFrom := fromPos + len(markerFrom)
	toRel := strings.Index(rest[afterFrom:], markerTo)
	if toRel < 0 {
		return Command{}, parseErr(MalformedEvent, "event", usage)
	}
	toPos := afterFrom + toRel

	desc := strings.TrimSpace(rest[:fromPos])
	from := strings.TrimSpace(rest[afterFrom:toPos])
	to := strings.TrimSpace(rest[toPos+len(markerTo):])
	if desc == "" || from == "" || to == "" {
		return Command{}, parseErr(MalformedEvent, "event", "event needs a description, /from and /to")
	}
	if strings.Contains(from, task.RangeSeparator) || strings.Contains(to, task.RangeSeparator) {
		return Command{}, parseErr(IllegalCharacter, "event", "event start and end cannot contain %q", task.RangeSeparator)
	}
	if err := checkDescription("event", desc); err != nil {
		return Command{}, err
	}
	return Command{Type: AddEvent, Description: desc, From: from, To: to}, nil
}

// checkDescription rejects the characters reserved by the save file.
func checkDescription(head, desc string) error {
	if task.HasReserved(desc) {
		return parseErr(IllegalCharacter, head, "description cannot contain %q or %q, or start or end with \"|\"", task.RecordSeparator, task.RangeSeparator)
	}
	return nil
}
