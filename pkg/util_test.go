package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	s1, err := GenerateRandomString(35)
	require.NoError(t, err)
	s2, err := GenerateRandomString(35)
	require.NoError(t, err)

	assert.NotEmpty(t, s1)
	assert.NotEmpty(t, s2)
	assert.NotEqual(t, s1, s2)
}

func TestParseDateOrToday(t *testing.T) {
	d := ParseDateOrToday("2024-05-05")
	assert.Equal(t, time.Date(2024, 5, 5, 0, 0, 0, 0, time.Local), d)

	// empty and malformed values fall back to today
	today := DateToday()
	assert.Equal(t, today, ParseDateOrToday(""))
	assert.Equal(t, today, ParseDateOrToday("05.05.2024"))
	assert.Equal(t, today, ParseDateOrToday("not-a-date"))
}

func TestDateToday(t *testing.T) {
	today := DateToday()
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
	assert.Equal(t, time.Local, today.Location())
}
