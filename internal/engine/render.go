package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirbrooks/lebron/internal/task"
)

const checkDateLayout = "Jan 02 2006"

func greeting(name string) string {
	return "Hello! I'm " + name + "\nWhat can I do for you?"
}

func farewell() string {
	return "Bye. Hope to see you again soon!"
}

func renderList(tasks []*task.Task) string {
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	writeRows(&b, tasks)
	return b.String()
}

func renderFind(matches []*task.Task) string {
	switch len(matches) {
	case 0:
		return "No matching tasks found."
	case 1:
		return "Here is the only matching task in your list:\n" + matches[0].Render()
	}
	var b strings.Builder
	b.WriteString("Here are the matching tasks in your list:")
	writeRows(&b, matches)
	return b.String()
}

func renderCheck(date time.Time, matches []*task.Task) string {
	label := date.Format(checkDateLayout)
	if len(matches) == 0 {
		return "No tasks scheduled for " + label
	}
	var b strings.Builder
	b.WriteString("Tasks scheduled for " + label + ":")
	writeRows(&b, matches)
	return b.String()
}

func writeRows(b *strings.Builder, tasks []*task.Task) {
	for i, t := range tasks {
		fmt.Fprintf(b, "\n%d. %s", i+1, t.Render())
	}
}

func renderMarked(t *task.Task) string {
	return "Nice! I've marked this task as done:\n    [X] " + t.Description
}

func renderUnmarked(t *task.Task) string {
	return "OK, I've marked this task as not done yet:\n    [ ] " + t.Description
}

func renderAdded(t *task.Task, size int) string {
	return "Got it. I've added this task:\n      " + t.Render() + "\n" + countLine(size)
}

func renderDeleted(t *task.Task, size int) string {
	return "Noted. I've removed this task:\n      " + t.Render() + "\n" + countLine(size)
}

func countLine(size int) string {
	noun := "tasks"
	if size == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Now you have %d %s in the list.", size, noun)
}

func renderError(err error) string {
	return "Error - " + err.Error()
}
