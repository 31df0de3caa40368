package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList(t *testing.T, n int) *List {
	t.Helper()
	l := NewList(nil)
	for i := 0; i < n; i++ {
		todo, err := NewTodo(string(rune('a' + i)))
		require.NoError(t, err)
		l.Add(todo)
	}
	return l
}

func TestMarkThenUnmarkRestoresFlag(t *testing.T) {
	l := sampleList(t, 3)
	for i := 1; i <= l.Size(); i++ {
		before := l.All()[i-1].Done
		_, err := l.Mark(i)
		require.NoError(t, err)
		assert.True(t, l.All()[i-1].Done)
		_, err = l.Unmark(i)
		require.NoError(t, err)
		assert.Equal(t, before, l.All()[i-1].Done)
	}
}

func TestOutOfRangeLeavesListUnchanged(t *testing.T) {
	l := sampleList(t, 2)
	for _, idx := range []int{-1, 0, 3, 100} {
		_, err := l.Mark(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Unmark(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Delete(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = l.Get(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	require.Equal(t, 2, l.Size())
	for _, tk := range l.All() {
		assert.False(t, tk.Done)
	}
}

func TestDeleteReturnsRemovedAndKeepsOrder(t *testing.T) {
	l := sampleList(t, 3)
	removed, err := l.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Description)
	require.Equal(t, 2, l.Size())
	assert.Equal(t, "a", l.All()[0].Description)
	assert.Equal(t, "c", l.All()[1].Description)
}

func TestEmptyListIndexError(t *testing.T) {
	l := NewList(nil)
	_, err := l.Delete(1)
	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, ie.Size)
	assert.Contains(t, err.Error(), "empty")
}
