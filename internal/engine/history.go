package engine

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/lebron/internal/command"
	"github.com/amirbrooks/lebron/internal/task"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var timeNow = func() time.Time { return time.Now().UTC() }

// Entry is one applied, reversible command.
type Entry struct {
	ID      string
	At      time.Time
	Command command.Command
}

// History holds applied commands and the tasks removed by deletes.
// It lives for one process run and is never persisted.
type History struct {
	entries []Entry
	deleted []*task.Task
	entropy *ulid.MonotonicEntropy
}

func NewHistory() *History {
	return &History{entropy: ulid.Monotonic(randReader{}, 0)}
}

func (h *History) Push(c command.Command) Entry {
	now := timeNow()
	e := Entry{ID: h.newID(now), At: now, Command: c}
	h.entries = append(h.entries, e)
	return e
}

func (h *History) Pop() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	e := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

func (h *History) PushDeleted(t *task.Task) {
	h.deleted = append(h.deleted, t)
}

func (h *History) PopDeleted() (*task.Task, bool) {
	if len(h.deleted) == 0 {
		return nil, false
	}
	t := h.deleted[len(h.deleted)-1]
	h.deleted[len(h.deleted)-1] = nil
	h.deleted = h.deleted[:len(h.deleted)-1]
	return t, true
}

func (h *History) Len() int { return len(h.entries) }

// Entries returns applied entries, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) newID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), h.entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", now.UnixNano())
	}
	return strings.ToUpper(id.String())
}
