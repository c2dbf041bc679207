package osutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithin(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.True(t, Within(now, now, 0))
	assert.True(t, Within(now, now.Add(time.Millisecond), 2*time.Millisecond))
	assert.True(t, Within(now.Add(time.Millisecond), now, 2*time.Millisecond))
	assert.False(t, Within(now, now.Add(time.Second), 2*time.Millisecond))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "< 1ms", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "1.500 seconds", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2 minutes", FormatDuration(2*time.Minute))
	assert.Equal(t, "1 days 2 hours", FormatDuration(26*time.Hour))
}
