package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func MustParseDateSpec(raw string) DateSpec {
	d, err := ParseDateSpec(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParseDateSpecDateTime(t *testing.T) {
	d, err := ParseDateSpec("2025-08-27 1800")
	require.NoError(t, err)
	assert.True(t, d.HasTime())
	assert.Equal(t, "Aug 27 2025, 6:00 pm", d.Display())
	assert.Equal(t, "2025-08-27 1800", d.Original())
}

func TestParseDateSpecDateOnly(t *testing.T) {
	d, err := ParseDateSpec("  2025-08-27 ")
	require.NoError(t, err)
	assert.False(t, d.HasTime())
	assert.Equal(t, "Aug 27 2025", d.Display())
	assert.Equal(t, "2025-08-27", d.Original())
}

func TestParseDateSpecSingleDigitFields(t *testing.T) {
	d, err := ParseDateSpec("2025-8-7 0905")
	require.NoError(t, err)
	assert.Equal(t, "Aug 7 2025, 9:05 am", d.Display())
	assert.Equal(t, "2025-8-7 0905", d.Original())
}

func TestParseDateSpecRejects(t *testing.T) {
	cases := []string{
		"2025-13-01",
		"2025-02-30",
		"2025/08/27",
		"2025-08-27 18:00",
		"2025-08-27 2460",
		"tomorrow",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDateSpec(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDateFormat))
			assert.Contains(t, err.Error(), "yyyy-MM-dd HHmm")
			assert.Contains(t, err.Error(), "yyyy-MM-dd")
		})
	}
}

func TestParseDateSpecEmpty(t *testing.T) {
	_, err := ParseDateSpec("   ")
	require.Error(t, err)
	var de *DateError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, EmptyValue, de.Kind)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateSpecIncludes(t *testing.T) {
	day := time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC)
	assert.True(t, MustParseDateSpec("2025-08-27").Includes(day))
	assert.True(t, MustParseDateSpec("2025-08-27 2359").Includes(day))
	assert.False(t, MustParseDateSpec("2025-08-28 0000").Includes(day))
}
