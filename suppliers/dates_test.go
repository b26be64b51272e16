package suppliers

import (
	"testing"
	"time"

	"github.com/Comcast/datagen/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	for format, want := range map[string]string{
		"%d-%m-%Y":          "02-01-2006",
		"%Y-%m-%dT%H:%M:%S": "2006-01-02T15:04:05",
		"100%%":             "100%",
		"2006-01-02":        "2006-01-02",
	} {
		got, err := Layout(format)
		require.NoError(t, err, format)
		assert.Equal(t, want, got, format)
	}

	_, err := Layout("%Q")
	assert.True(t, core.IsConfigurationError(err))
	_, err = Layout("oops%")
	assert.True(t, core.IsConfigurationError(err))
}

func TestDateWithinDuration(t *testing.T) {
	start := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	s, err := NewDate(start, 48*time.Hour, ISOLayout)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := time.Parse(ISOLayout, next(t, s, i).(string))
		require.NoError(t, err)
		assert.False(t, got.Before(start))
		assert.True(t, got.Before(start.Add(48*time.Hour)))
	}

	_, err = NewDate(start, -time.Hour, ISOLayout)
	assert.True(t, core.IsConfigurationError(err))
}

func TestCronDate(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewCronDate("0 12 * * *", start, ISOLayout)
	require.NoError(t, err)

	assert.Equal(t, "2020-01-01T12:00:00", next(t, s, 0))
	assert.Equal(t, "2020-01-03T12:00:00", next(t, s, 2))
	assert.Equal(t, "2020-01-04T12:00:00", next(t, s, 3))
	assert.Equal(t, "2020-01-04T12:00:00", next(t, s, 3))

	// Going backwards starts over.
	assert.Equal(t, "2020-01-02T12:00:00", next(t, s, 1))

	_, err = NewCronDate("not cron", start, ISOLayout)
	assert.True(t, core.IsConfigurationError(err))
}
