// Package engine applies parsed commands to the task list, records
// reversible ones for undo and persists the list after each mutation.
//
// An Engine is not safe for concurrent use; callers execute one line at
// a time.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/amirbrooks/lebron/internal/command"
	"github.com/amirbrooks/lebron/internal/store"
	"github.com/amirbrooks/lebron/internal/task"
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrInvalidDate   = errors.New("cannot check date")
)

// Saver persists the full task list.
type Saver interface {
	Save(tasks []*task.Task) error
}

type Options struct {
	// Name is used in the greeting. Defaults to store.DefaultName.
	Name   string
	Logger *log.Logger
}

type Engine struct {
	name    string
	tasks   *task.List
	saver   Saver
	history *History
	log     *log.Logger
}

// Result is the reply to one executed line.
type Result struct {
	Command command.Type
	Message string
	// Exit is set for bye; ending the session is up to the caller.
	Exit bool
}

func New(saver Saver, tasks []*task.Task, opts Options) *Engine {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = store.DefaultName
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		name:    name,
		tasks:   task.NewList(tasks),
		saver:   saver,
		history: NewHistory(),
		log:     logger,
	}
}

func (e *Engine) Tasks() *task.List { return e.tasks }

func (e *Engine) History() *History { return e.history }

// Execute parses and applies one line. When the list changed but could
// not be saved, the Result is returned together with an error wrapping
// store.ErrSave; the change is kept.
func (e *Engine) Execute(raw string) (Result, error) {
	c, err := command.Parse(raw)
	if err != nil {
		return Result{}, err
	}
	return e.apply(c)
}

// Respond is Execute with any error folded into the reply text.
func (e *Engine) Respond(raw string) string {
	return Reply(e.Execute(raw))
}

// Reply renders the outcome of Execute as the text shown to the user.
func Reply(res Result, err error) string {
	if err == nil {
		return res.Message
	}
	if res.Message == "" {
		return renderError(err)
	}
	return res.Message + "\n" + renderError(err)
}

func (e *Engine) apply(c command.Command) (Result, error) {
	res := Result{Command: c.Type}
	switch c.Type {
	case command.Greet:
		res.Message = greeting(e.name)
		return res, nil
	case command.Bye:
		res.Message = farewell()
		res.Exit = true
		return res, nil
	case command.List:
		res.Message = renderList(e.tasks.All())
		return res, nil
	case command.Find:
		res.Message = renderFind(e.find(c.Keyword))
		return res, nil
	case command.Check:
		d, err := task.ParseDateSpec(c.Date)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
		res.Message = renderCheck(d.Date(), e.scheduledOn(d))
		return res, nil
	case command.Mark:
		t, err := e.tasks.Mark(c.Index)
		if err != nil {
			return Result{}, err
		}
		res.Message = renderMarked(t)
		return res, e.commit(c)
	case command.Unmark:
		t, err := e.tasks.Unmark(c.Index)
		if err != nil {
			return Result{}, err
		}
		res.Message = renderUnmarked(t)
		return res, e.commit(c)
	case command.Delete:
		t, err := e.tasks.Delete(c.Index)
		if err != nil {
			return Result{}, err
		}
		e.history.PushDeleted(t)
		res.Message = renderDeleted(t, e.tasks.Size())
		return res, e.commit(c)
	case command.AddTodo, command.AddDeadline, command.AddEvent:
		t, err := newTask(c)
		if err != nil {
			return Result{}, err
		}
		e.tasks.Add(t)
		res.Message = renderAdded(t, e.tasks.Size())
		return res, e.commit(c)
	case command.Undo:
		return e.undo()
	default:
		return Result{}, &command.ParseError{Kind: command.UnknownCommand, Command: string(c.Type), Message: "unknown command"}
	}
}

func newTask(c command.Command) (*task.Task, error) {
	switch c.Type {
	case command.AddDeadline:
		return task.NewDeadline(c.Description, c.By)
	case command.AddEvent:
		return task.NewEvent(c.Description, c.From, c.To)
	default:
		return task.NewTodo(c.Description)
	}
}

// commit records c for undo and persists the list.
func (e *Engine) commit(c command.Command) error {
	entry := e.history.Push(c)
	e.log.Printf("applied %s %s (history %d)", entry.ID, c.Type, e.history.Len())
	return e.persist()
}

func (e *Engine) persist() error {
	if e.saver == nil {
		return nil
	}
	if err := e.saver.Save(e.tasks.All()); err != nil {
		e.log.Printf("persist: %v", err)
		if errors.Is(err, store.ErrSave) {
			return err
		}
		return fmt.Errorf("%w: %w", store.ErrSave, err)
	}
	return nil
}

// undo reverses the latest entry. Deleted tasks come back at the end of
// the list, not at their old position.
func (e *Engine) undo() (Result, error) {
	entry, ok := e.history.Pop()
	if !ok {
		return Result{}, ErrNothingToUndo
	}
	last := entry.Command
	res := Result{Command: command.Undo}
	e.log.Printf("undo %s %s", entry.ID, last.Type)

	switch {
	case last.Type == command.Mark:
		t, err := e.tasks.Unmark(last.Index)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrNothingToUndo, err)
		}
		res.Message = renderUnmarked(t)
	case last.Type == command.Unmark:
		t, err := e.tasks.Mark(last.Index)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrNothingToUndo, err)
		}
		res.Message = renderMarked(t)
	case last.Type == command.Delete:
		t, ok := e.history.PopDeleted()
		if !ok {
			return Result{}, ErrNothingToUndo
		}
		e.tasks.Add(t)
		res.Message = renderAdded(t, e.tasks.Size())
	case last.IsAdd():
		t, err := e.tasks.Delete(e.tasks.Size())
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrNothingToUndo, err)
		}
		res.Message = renderDeleted(t, e.tasks.Size())
	default:
		return Result{}, ErrNothingToUndo
	}
	return res, e.persist()
}

func (e *Engine) find(keyword string) []*task.Task {
	q := strings.ToLower(strings.TrimSpace(keyword))
	var out []*task.Task
	for _, t := range e.tasks.All() {
		if strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

func (e *Engine) scheduledOn(d task.DateSpec) []*task.Task {
	var out []*task.Task
	for _, t := range e.tasks.All() {
		if t.IsScheduled() && t.IsOnDate(d.Date()) {
			out = append(out, t)
		}
	}
	return out
}
