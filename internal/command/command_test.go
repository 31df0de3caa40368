package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrParse), "expected ErrParse, got %v", err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	return pe.Kind
}

func TestParseTodoTrimsDescription(t *testing.T) {
	c, err := Parse("  todo   read book  ")
	require.NoError(t, err)
	assert.Equal(t, AddTodo, c.Type)
	assert.Equal(t, "read book", c.Description)
}

func TestParseKeywordIsCaseInsensitive(t *testing.T) {
	c, err := Parse("TODO Read Book")
	require.NoError(t, err)
	assert.Equal(t, AddTodo, c.Type)
	assert.Equal(t, "Read Book", c.Description)

	c, err = Parse("LiSt")
	require.NoError(t, err)
	assert.Equal(t, List, c.Type)
}

func TestParseDeadline(t *testing.T) {
	c, err := Parse("deadline submit report /by 2025-08-27")
	require.NoError(t, err)
	assert.Equal(t, AddDeadline, c.Type)
	assert.Equal(t, "submit report", c.Description)
	assert.Equal(t, "2025-08-27", c.By)
	assert.True(t, c.IsAdd())
}

func TestParseEvent(t *testing.T) {
	c, err := Parse("event project mtg /from 2025-08-26 /to 2025-08-27")
	require.NoError(t, err)
	assert.Equal(t, AddEvent, c.Type)
	assert.Equal(t, "project mtg", c.Description)
	assert.Equal(t, "2025-08-26", c.From)
	assert.Equal(t, "2025-08-27", c.To)
}

func TestParseIndexCommands(t *testing.T) {
	for _, head := range []string{"mark", "unmark", "delete"} {
		c, err := Parse(head + " 3")
		require.NoError(t, err)
		assert.Equal(t, Type(head), c.Type)
		assert.Equal(t, 3, c.Index)
	}
}

func TestParseNoArgCommands(t *testing.T) {
	cases := map[string]Type{"hi": Greet, "bye": Bye, "undo": Undo, "list": List}
	for in, want := range cases {
		c, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, want, c.Type)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		kind Kind
	}{
		{"", EmptyCommand},
		{"   ", EmptyCommand},
		{"abracadabra", UnknownCommand},
		{"list extra", UnexpectedArgument},
		{"mark", MissingIndex},
		{"mark -1", NotAPositiveInteger},
		{"unmark -1", NotAPositiveInteger},
		{"delete 0", NotAPositiveInteger},
		{"delete -3", NotAPositiveInteger},
		{"delete two", NotAPositiveInteger},
		{"delete 99999999999999999999", NotAPositiveInteger},
		{"todo", EmptyDescription},
		{"todo a | b", IllegalCharacter},
		{"todo a |", IllegalCharacter},
		{"deadline |x /by 2025-08-27", IllegalCharacter},
		{"deadline report", MalformedDeadline},
		{"deadline /by 2025-08-27", MalformedDeadline},
		{"deadline report /by   ", MalformedDeadline},
		{"event party", MalformedEvent},
		{"event party /to 2025-08-27 /from 2025-08-26", MalformedEvent},
		{"event test /from 1234-2-2 1609 /to      ", MalformedEvent},
		{"event party /from 2025-08-26 – x /to 2025-08-27", IllegalCharacter},
		{"check", MissingDate},
		{"find", MissingKeyword},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			assert.Equal(t, tc.kind, kindOf(t, err))
		})
	}
}

func TestParseListErrorNamesCommand(t *testing.T) {
	_, err := Parse("list extra")
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "list")
}

func TestParseFindAndCheckKeepRest(t *testing.T) {
	c, err := Parse("find  old book ")
	require.NoError(t, err)
	assert.Equal(t, "old book", c.Keyword)

	c, err = Parse("check 2025-08-27")
	require.NoError(t, err)
	assert.Equal(t, Check, c.Type)
	assert.Equal(t, "2025-08-27", c.Date)
}
