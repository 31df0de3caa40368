package task

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventSpanningMidnightIncludesBothDays(t *testing.T) {
	e, err := NewEvent("Overnight", "2025-08-26 2330", "2025-08-27 0030")
	require.NoError(t, err)
	assert.True(t, e.IsOnDate(day(2025, 8, 26)))
	assert.True(t, e.IsOnDate(day(2025, 8, 27)))
	assert.False(t, e.IsOnDate(day(2025, 8, 25)))
	assert.False(t, e.IsOnDate(day(2025, 8, 28)))
}

func TestEventDateOnlyRangeIsInclusive(t *testing.T) {
	e, err := NewEvent("Camp", "2025-09-10", "2025-09-12")
	require.NoError(t, err)
	for d := 10; d <= 12; d++ {
		assert.True(t, e.IsOnDate(day(2025, 9, d)), "day %d", d)
	}
	assert.False(t, e.IsOnDate(day(2025, 9, 9)))
	assert.False(t, e.IsOnDate(day(2025, 9, 13)))
}

func TestEventStartAfterEnd(t *testing.T) {
	_, err := NewEvent("Bad times", "2025-08-27 1609", "2025-08-27 1608")
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, BadRange, ve.Kind)
}

func TestEventEqualEndpointsAllowed(t *testing.T) {
	_, err := NewEvent("Instant", "2025-08-27 1600", "2025-08-27 1600")
	require.NoError(t, err)
}

func TestEventMixedFormats(t *testing.T) {
	_, err := NewEvent("Mixed", "2025-08-27", "2025-08-28 1000")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MixedFormats, ve.Kind)
}

func TestEventInvalidFormats(t *testing.T) {
	_, err := NewEvent("Bad format", "2025/08/27 0900", "2025/08/27 1000")
	assert.ErrorIs(t, err, ErrDateFormat)
	_, err = NewEvent("Bad date", "2025-13-01", "2025-13-02")
	assert.ErrorIs(t, err, ErrDateFormat)
}

func TestDescriptionRules(t *testing.T) {
	_, err := NewTodo("   ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewTodo("a | b")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewTodo("a – b")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewTodo("|a")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewTodo("a |")
	assert.ErrorIs(t, err, ErrValidation)

	piped, err := NewTodo("a|b")
	require.NoError(t, err)
	assert.Equal(t, "a|b", piped.Description)

	todo, err := NewTodo("  read book ")
	require.NoError(t, err)
	assert.Equal(t, "read book", todo.Description)
}

func TestRender(t *testing.T) {
	todo, _ := NewTodo("read book")
	assert.Equal(t, "[T][ ] read book", todo.Render())

	d, err := NewDeadline("return book", "2025-08-27 1800")
	require.NoError(t, err)
	d.Mark()
	assert.Equal(t, "[D][X] return book (by: Aug 27 2025, 6:00 pm)", d.Render())

	e, err := NewEvent("LEBRONNNN", "2025-08-27 0900", "2025-08-27 1000")
	require.NoError(t, err)
	s := e.Render()
	assert.True(t, strings.HasPrefix(s, "[E]"))
	assert.Contains(t, s, "(from: Aug 27 2025, 9:00 am to: Aug 27 2025, 10:00 am)")
}

func TestTodoIsNeverOnDate(t *testing.T) {
	todo, _ := NewTodo("x")
	assert.False(t, todo.IsOnDate(day(2025, 1, 1)))
	assert.False(t, todo.IsScheduled())
}

func TestToggle(t *testing.T) {
	todo, _ := NewTodo("x")
	todo.Toggle()
	assert.True(t, todo.Done)
	todo.Toggle()
	assert.False(t, todo.Done)
}
