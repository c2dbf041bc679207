package resiliency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryGetEventuallySucceeds(t *testing.T) {
	t.Parallel()

	attempts := 0
	val, err := RetryGet(context.Background(), defaultExponentialBackoff(), func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("not yet")
		}
		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, val)
	require.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	permErr := errors.New("no point retrying")
	attempts := 0
	err := Retry(context.Background(), defaultExponentialBackoff(), func() error {
		attempts++
		return Permanent(permErr)
	})

	require.ErrorIs(t, err, permErr)
	require.Equal(t, 1, attempts)
}

func TestRetryExponentialWithTimeoutReportsLastError(t *testing.T) {
	t.Parallel()

	attemptErr := errors.New("still failing")
	err := RetryExponentialWithTimeout(context.Background(), 200*time.Millisecond, func() error {
		return attemptErr
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.ErrorIs(t, err, attemptErr)
}
